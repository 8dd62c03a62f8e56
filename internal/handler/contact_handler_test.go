package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/elitedog/backend/internal/apperr"
	"github.com/elitedog/backend/internal/model"
	"github.com/elitedog/backend/internal/validation"
	"github.com/elitedog/backend/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Mock ContactForm
// ---------------------------------------------------------------------------

type mockContactForm struct {
	submitFunc func(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error)
	calls      int
	lastUserID string
}

func (m *mockContactForm) Submit(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error) {
	m.calls++
	m.lastUserID = userID
	if m.submitFunc != nil {
		return m.submitFunc(ctx, userID, c)
	}
	return &model.Submission{ID: "sub-1", Name: c.Name, Email: c.Email, Message: c.Message, CreatedAt: time.Now()}, nil
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(auth.WithUserID(req.Context(), "user_1"))
}

func contactValues(name, email, message string) url.Values {
	return url.Values{"name": {name}, "email": {email}, "message": {message}}
}

// ---------------------------------------------------------------------------
// GET /contact
// ---------------------------------------------------------------------------

func TestContactHandler_Show_EmptyForm(t *testing.T) {
	h := NewContactHandler(&mockContactForm{}, MustRenderer())
	rec := httptest.NewRecorder()

	h.Show(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="name"`)
	assert.Contains(t, body, "data-disable-on-submit")
	assert.NotContains(t, body, "Message sent!")
	assert.NotContains(t, body, "Failed to send message")
}

func TestContactHandler_Show_ConsumesFlash(t *testing.T) {
	h := NewContactHandler(&mockContactForm{}, MustRenderer())
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: flashSent})
	rec := httptest.NewRecorder()

	h.Show(rec, req)

	assert.Contains(t, rec.Body.String(), "Message sent! We'll get back to you as soon as possible.")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0, "flash must be cleared after one render")
}

// ---------------------------------------------------------------------------
// POST /contact
// ---------------------------------------------------------------------------

// valid input is accepted, the form clears and a success notice follows.
func TestContactHandler_Submit_Success(t *testing.T) {
	form := &mockContactForm{}
	h := NewContactHandler(form, MustRenderer())
	rec := httptest.NewRecorder()

	h.Submit(rec, formRequest(contactValues("Al", "al@example.com", "Please call me back")))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact", rec.Header().Get("Location"))
	assert.Equal(t, 1, form.calls)
	assert.Equal(t, "user_1", form.lastUserID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashSent, cookies[0].Value)
}

// two failing fields are reported inline and the values are kept.
func TestContactHandler_Submit_ValidationErrors(t *testing.T) {
	form := &mockContactForm{
		submitFunc: func(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error) {
			_, err := validation.Check(c)
			return nil, err
		},
	}
	h := NewContactHandler(form, MustRenderer())
	rec := httptest.NewRecorder()

	h.Submit(rec, formRequest(contactValues("A", "al@example.com", "short")))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Name must be at least 2 characters")
	assert.Contains(t, body, "Message must be at least 10 characters")
	assert.NotContains(t, body, "Invalid email address")
	assert.Contains(t, body, `value="al@example.com"`)
	assert.Contains(t, body, ">short</textarea>")
	assert.NotContains(t, body, "Message sent!")
	assert.Empty(t, rec.Result().Cookies())
}

// a store failure keeps the values and shows the error notice.
func TestContactHandler_Submit_PersistenceError(t *testing.T) {
	form := &mockContactForm{
		submitFunc: func(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error) {
			return nil, &apperr.PersistenceError{Op: "create", Err: errors.New("connection refused")}
		},
	}
	h := NewContactHandler(form, MustRenderer())
	rec := httptest.NewRecorder()

	h.Submit(rec, formRequest(contactValues("Alice", "alice@example.com", "Please call me back")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to send message. Please try again.")
	assert.Contains(t, body, `value="Alice"`)
	assert.Contains(t, body, `value="alice@example.com"`)
	assert.Contains(t, body, ">Please call me back</textarea>")
	assert.Empty(t, rec.Result().Cookies())
}

// ---------------------------------------------------------------------------
// POST /api/submissions
// ---------------------------------------------------------------------------

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(auth.WithUserID(req.Context(), "user_1"))
}

func TestContactHandler_SubmitJSON_Created(t *testing.T) {
	h := NewContactHandler(&mockContactForm{}, MustRenderer())
	rec := httptest.NewRecorder()

	h.SubmitJSON(rec, jsonRequest(`{"name":"Al","email":"al@example.com","message":"Please call me back"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got model.Submission
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, "Al", got.Name)
}

func TestContactHandler_SubmitJSON_InvalidJSON(t *testing.T) {
	form := &mockContactForm{}
	h := NewContactHandler(form, MustRenderer())
	rec := httptest.NewRecorder()

	h.SubmitJSON(rec, jsonRequest(`{bad`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_json"}`, rec.Body.String())
	assert.Zero(t, form.calls)
}

func TestContactHandler_SubmitJSON_ValidationFailed(t *testing.T) {
	form := &mockContactForm{
		submitFunc: func(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error) {
			_, err := validation.Check(c)
			return nil, err
		},
	}
	h := NewContactHandler(form, MustRenderer())
	rec := httptest.NewRecorder()

	h.SubmitJSON(rec, jsonRequest(`{"name":"A","email":"al@example.com","message":"short"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{
		"error": "validation_failed",
		"fields": {
			"name": "Name must be at least 2 characters",
			"message": "Message must be at least 10 characters"
		}
	}`, rec.Body.String())
}

func TestContactHandler_SubmitJSON_SubmitFailed(t *testing.T) {
	form := &mockContactForm{
		submitFunc: func(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error) {
			return nil, &apperr.PersistenceError{Op: "create", Err: context.DeadlineExceeded}
		},
	}
	h := NewContactHandler(form, MustRenderer())
	rec := httptest.NewRecorder()

	h.SubmitJSON(rec, jsonRequest(`{"name":"Al","email":"al@example.com","message":"Please call me back"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"submit_failed"}`, rec.Body.String())
}
