// SPDX-License-Identifier: GPL-3.0-or-later

package mock_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcclient "github.com/alfred82santa/aio-service-client"
	"github.com/alfred82santa/aio-service-client/mock"
)

var getReq = &svcclient.TransportRequest{Method: "GET", URL: "/x"}

func TestRawDataMock(t *testing.T) {
	m := mock.RawDataMock(404, map[string][]string{"X-Kind": {"stub"}}, "not here")

	resp, err := m.Handle(context.Background(), getReq)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, []string{"stub"}, resp.Headers["X-Kind"])

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "not here", string(body))
}

func TestJsonDataMock(t *testing.T) {
	m, err := mock.JsonDataMock(200, nil, map[string]any{"a": 1})
	require.NoError(t, err)

	resp, err := m.Handle(context.Background(), getReq)
	require.NoError(t, err)
	assert.Equal(t, []string{"application/json"}, resp.Headers["Content-Type"])

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(body))
}

func TestJsonDataMockRejectsScalars(t *testing.T) {
	_, err := mock.JsonDataMock(200, nil, "just a string")
	require.Error(t, err)

	_, err = mock.JsonDataMock(200, nil, 42)
	require.Error(t, err)

	_, err = mock.JsonDataMock(200, nil, []any{1, 2})
	require.NoError(t, err)
}

func TestRawFileMock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fixture":true}`), 0o600))

	m := mock.NewRawFileMock(200, nil, path)
	resp, err := m.Handle(context.Background(), getReq)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.JSONEq(t, `{"fixture":true}`, string(body))
}

func TestRawFileMockMissingFile(t *testing.T) {
	m := mock.NewRawFileMock(200, nil, filepath.Join(t.TempDir(), "absent"))
	_, err := m.Handle(context.Background(), getReq)
	require.Error(t, err)
}

func TestEachMockHasDistinctIdentity(t *testing.T) {
	a := mock.RawDataMock(200, nil, "a")
	b := mock.RawDataMock(200, nil, "a")
	assert.NotEqual(t, a.ID(), b.ID())
}
