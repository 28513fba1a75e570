package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const tokenHeader = "X-CSRF-Token"

// emailExists asks the backend whether an account exists for the address. The
// second return value reports whether the check actually ran: without a token
// (or on any transport failure) the rule is not checkable and callers must
// treat the field as clean rather than failed.
func (e *Engine) emailExists(ctx context.Context, email string) (exists, checked bool) {
	payload := struct {
		Email string `json:"email"`
	}{Email: email}

	var result struct {
		Exists bool `json:"exists"`
	}
	if !e.postCheck(ctx, e.emailCheckURL, payload, &result) {
		return false, false
	}
	return result.Exists, true
}

// passwordMatches verifies the supplied value against the signed-in user's
// current password. Same precondition discipline as emailExists.
func (e *Engine) passwordMatches(ctx context.Context, password string) (valid, checked bool) {
	payload := struct {
		Password string `json:"password"`
	}{Password: password}

	var result struct {
		Valid bool `json:"valid"`
	}
	if !e.postCheck(ctx, e.passwordCheckURL, payload, &result) {
		return false, false
	}
	return result.Valid, true
}

func (e *Engine) postCheck(ctx context.Context, url string, payload, result any) bool {
	if url == "" || e.tokens == nil {
		return false
	}
	credential, ok := e.tokens.Ensure(ctx)
	if !ok {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if e.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, credential)

	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, result) == nil
}
