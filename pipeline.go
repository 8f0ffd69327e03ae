// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "context"

func (c *Client) firePrepareSession(ctx context.Context, session *SessionWrapper, params *RequestParams) error {
	for _, p := range c.plugins {
		hook, ok := p.(PrepareSessioner)
		if !ok {
			continue
		}
		if err := hook.PrepareSession(ctx, session, params); err != nil {
			return &PluginError{Hook: "prepare_session", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

func (c *Client) firePreparePath(ctx context.Context, path string, params *RequestParams) (string, error) {
	for _, p := range c.plugins {
		hook, ok := p.(PreparePathier)
		if !ok {
			continue
		}
		next, err := hook.PreparePath(ctx, path, params)
		if err != nil {
			return path, &PluginError{Hook: "prepare_path", Plugin: p.Name(), Err: err}
		}
		path = next
	}
	return path, nil
}

func (c *Client) firePrepareRequestParams(ctx context.Context, params *RequestParams) error {
	for _, p := range c.plugins {
		hook, ok := p.(PrepareRequestParamser)
		if !ok {
			continue
		}
		if err := hook.PrepareRequestParams(ctx, params); err != nil {
			return &PluginError{Hook: "prepare_request_params", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

func (c *Client) firePreparePayload(ctx context.Context, payload any, params *RequestParams) (any, error) {
	for _, p := range c.plugins {
		hook, ok := p.(PreparePayloader)
		if !ok {
			continue
		}
		next, err := hook.PreparePayload(ctx, payload, params)
		if err != nil {
			return payload, &PluginError{Hook: "prepare_payload", Plugin: p.Name(), Err: err}
		}
		payload = next
	}
	return payload, nil
}

func (c *Client) fireBeforeRequest(ctx context.Context, session *SessionWrapper, params *RequestParams) error {
	for _, p := range c.plugins {
		hook, ok := p.(BeforeRequester)
		if !ok {
			continue
		}
		if err := hook.BeforeRequest(ctx, session, params); err != nil {
			return &PluginError{Hook: "before_request", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

func (c *Client) firePrepareResponse(ctx context.Context, response *ResponseWrapper) error {
	for _, p := range c.plugins {
		hook, ok := p.(PrepareResponser)
		if !ok {
			continue
		}
		if err := hook.PrepareResponse(ctx, response); err != nil {
			return &PluginError{Hook: "prepare_response", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

func (c *Client) fireOnResponse(ctx context.Context, response *ResponseWrapper) error {
	for _, p := range c.plugins {
		hook, ok := p.(OnResponser)
		if !ok {
			continue
		}
		if err := hook.OnResponse(ctx, response); err != nil {
			return &PluginError{Hook: "on_response", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

func (c *Client) fireOnRead(ctx context.Context, response *ResponseWrapper) error {
	for _, p := range c.plugins {
		hook, ok := p.(OnReader)
		if !ok {
			continue
		}
		if err := hook.OnRead(ctx, response); err != nil {
			return &PluginError{Hook: "on_read", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

func (c *Client) fireOnParsedResponse(ctx context.Context, response *ResponseWrapper, parsed any) error {
	for _, p := range c.plugins {
		hook, ok := p.(OnParsedResponser)
		if !ok {
			continue
		}
		if err := hook.OnParsedResponse(ctx, response, parsed); err != nil {
			return &PluginError{Hook: "on_parsed_response", Plugin: p.Name(), Err: err}
		}
	}
	return nil
}

// fireOnException runs on_exception hooks over err, in registration
// order, feeding each plugin's returned error into the next. A plugin
// returning nil leaves the current error in place: hooks observe and may
// wrap the failure, never swallow it.
func (c *Client) fireOnException(ctx context.Context, session *SessionWrapper, params *RequestParams, err error) error {
	for _, p := range c.plugins {
		hook, ok := p.(OnExceptioner)
		if !ok {
			continue
		}
		if next := hook.OnException(ctx, session, params, err); next != nil {
			err = next
		}
	}
	return err
}

// fireOnParseException is the on_parse_exception analogue of
// fireOnException.
func (c *Client) fireOnParseException(ctx context.Context, response *ResponseWrapper, err error) error {
	for _, p := range c.plugins {
		hook, ok := p.(OnParseExceptioner)
		if !ok {
			continue
		}
		if next := hook.OnParseException(ctx, response, err); next != nil {
			err = next
		}
	}
	return err
}
