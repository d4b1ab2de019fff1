package dto

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennel/kennel/internal/service"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T (%v)", err, err)
	return verr
}

func TestDecodeJSON_CreateUser(t *testing.T) {
	var req CreateUserRequest
	err := DecodeJSON(strings.NewReader(`{"name":"Ana","email":"ana@x.com","extra":true}`), &req)
	require.NoError(t, err)

	input := req.ToInput()
	assert.Equal(t, "Ana", input.Name)
	assert.Equal(t, "ana@x.com", input.Email)
}

func TestDecodeJSON_EmptyStringsAreAccepted(t *testing.T) {
	var req CreateUserRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"","email":""}`), &req))
}

func TestDecodeJSON_Failures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		dst      func() any
		wantLocs [][]any
		wantType string
	}{
		{
			name:     "missing fields",
			body:     `{"name":"Ana"}`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody, "email"}},
			wantType: TypeMissing,
		},
		{
			name:     "null required field",
			body:     `{"name":null,"email":"a@x.com"}`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody, "name"}},
			wantType: TypeMissing,
		},
		{
			name:     "all dog fields missing",
			body:     `{}`,
			dst:      func() any { return &CreateDogRequest{} },
			wantLocs: [][]any{{LocBody, "name"}, {LocBody, "age"}, {LocBody, "breed"}},
			wantType: TypeMissing,
		},
		{
			name:     "empty body",
			body:     ``,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody}},
			wantType: TypeMissing,
		},
		{
			name:     "wrong type for int",
			body:     `{"name":"Rex","age":"three","breed":"Lab"}`,
			dst:      func() any { return &CreateDogRequest{} },
			wantLocs: [][]any{{LocBody, "age"}},
			wantType: TypeIntType,
		},
		{
			name:     "wrong type for string",
			body:     `{"name":123,"email":"a@x.com"}`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody, "name"}},
			wantType: TypeStringType,
		},
		{
			name:     "array instead of object",
			body:     `[1,2]`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody}},
			wantType: TypeObjectExpected,
		},
		{
			name:     "truncated json",
			body:     `{"name":`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody}},
			wantType: TypeJSONInvalid,
		},
		{
			name:     "trailing partial value",
			body:     `{"name":"Ana","email":"a@x.com"} {"oops"`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody}},
			wantType: TypeJSONInvalid,
		},
		{
			name:     "trailing second object",
			body:     `{"name":"Ana","email":"a@x.com"}{}`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody}},
			wantType: TypeJSONInvalid,
		},
		{
			name:     "trailing garbage",
			body:     `{"name":"Ana","email":"a@x.com"} x`,
			dst:      func() any { return &CreateUserRequest{} },
			wantLocs: [][]any{{LocBody}},
			wantType: TypeJSONInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := requireValidationError(t, DecodeJSON(strings.NewReader(tt.body), tt.dst()))

			require.Len(t, verr.Fields, len(tt.wantLocs))
			for i, fe := range verr.Fields {
				assert.Equal(t, tt.wantLocs[i], fe.Loc)
				assert.Equal(t, tt.wantType, fe.Type)
				assert.NotEmpty(t, fe.Msg)
			}
		})
	}
}

func TestDecodeJSON_SyntaxError(t *testing.T) {
	verr := requireValidationError(t, DecodeJSON(strings.NewReader(`{"name" "Ana"}`), &CreateUserRequest{}))

	require.Len(t, verr.Fields, 1)
	assert.Equal(t, TypeJSONInvalid, verr.Fields[0].Type)
	assert.Equal(t, LocBody, verr.Fields[0].Loc[0])
}

func TestDecodeJSON_UpdateAllowsPartial(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":null,"email":"new@x.com"}`), &req))

	patch := req.ToPatch()
	assert.Nil(t, patch.Name)
	require.NotNil(t, patch.Email)
	assert.Equal(t, "new@x.com", *patch.Email)
}

func TestDecodeJSON_ZeroAgeIsPresent(t *testing.T) {
	var req CreateDogRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"Pup","age":0,"breed":"Lab"}`), &req))
	assert.Equal(t, 0, req.ToInput().Age)
}

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      service.Page
		wantErr   bool
		wantTypes []string
	}{
		{name: "defaults", query: "", want: service.Page{Skip: 0, Limit: 10}},
		{name: "explicit", query: "skip=5&limit=2", want: service.Page{Skip: 5, Limit: 2}},
		{name: "empty values use defaults", query: "skip=&limit=", want: service.Page{Skip: 0, Limit: 10}},
		{name: "non-numeric", query: "skip=a&limit=b", wantErr: true, wantTypes: []string{TypeIntParsing, TypeIntParsing}},
		{name: "negative skip", query: "skip=-1", wantErr: true, wantTypes: []string{TypeGreaterThanEqual}},
		{name: "zero limit", query: "limit=0", wantErr: true, wantTypes: []string{TypeGreaterThanEqual}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			q, err := ParseListQuery(values)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, q.ToPage())
				return
			}

			verr := requireValidationError(t, err)
			require.Len(t, verr.Fields, len(tt.wantTypes))
			for i, fe := range verr.Fields {
				assert.Equal(t, tt.wantTypes[i], fe.Type)
				assert.Equal(t, LocQuery, fe.Loc[0])
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("user_id", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("user_id", "abc")
	verr := requireValidationError(t, err)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, []any{LocPath, "user_id"}, verr.Fields[0].Loc)
	assert.Equal(t, TypeIntParsing, verr.Fields[0].Type)
}

func TestValidationError_Response(t *testing.T) {
	verr := newValidationError(FieldError{Loc: loc(LocBody, "name"), Msg: "Field required", Type: TypeMissing})

	resp := verr.Response()
	require.Len(t, resp.Detail, 1)
	assert.Contains(t, verr.Error(), TypeMissing)
}

func TestDecodeJSON_TrailingWhitespaceIsAccepted(t *testing.T) {
	var req CreateUserRequest
	require.NoError(t, DecodeJSON(strings.NewReader("{\"name\":\"Ana\",\"email\":\"a@x.com\"}\n\t "), &req))
	assert.Equal(t, "Ana", req.ToInput().Name)
}

func TestDecodeJSON_OversizedTrailingDataKeepsMaxBytesError(t *testing.T) {
	body := `{"name":"Ana","email":"a@x.com"} ` + strings.Repeat(" ", 64) + `{}`
	limited := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(body)), 40)

	err := DecodeJSON(limited, &CreateUserRequest{})

	var maxErr *http.MaxBytesError
	require.ErrorAs(t, err, &maxErr)
}
