package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/transcontinental/portal/internal/activity"
	"github.com/transcontinental/portal/internal/auth"
	mock_server "github.com/transcontinental/portal/internal/server/mocks"
	"github.com/transcontinental/portal/internal/storage"
	"github.com/transcontinental/portal/internal/upload"
)

const shipmentID = "2f1c7a3e-8a52-4d4b-9a55-0d7cf5a4f3b1"

var (
	fixedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	clientPrincipal = auth.Principal{ID: "c-1", Email: "acme@example.com", Name: "Jane", Kind: auth.KindClient}
	adminPrincipal  = auth.Principal{ID: "a-1", Email: "ops@example.com", Name: "Ops", Kind: auth.KindAdmin}
	superPrincipal  = auth.Principal{ID: "a-0", Email: "root@example.com", Name: "Root", Kind: auth.KindAdmin, SuperAdmin: true}
)

type fixture struct {
	storage *mock_server.MockStorage
	uploads *mock_server.MockUploads
	feed    *mock_server.MockActivityFeed
	tokens  *auth.TokenIssuer
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		storage: mock_server.NewMockStorage(ctrl),
		uploads: mock_server.NewMockUploads(ctrl),
		feed:    mock_server.NewMockActivityFeed(ctrl),
		tokens:  auth.NewTokenIssuer("test-secret", time.Hour),
	}
	srv := New(f.storage, f.uploads, f.feed, f.tokens, nil)
	srv.AuditManager.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.AuditManager.Shutdown(ctx)
	})
	f.handler = srv.Handler()
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, p *auth.Principal) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if p != nil {
		token, _, err := f.tokens.Issue(*p)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func strPtr(s string) *string { return &s }

func sampleShipment(status storage.Status) *storage.Shipment {
	return &storage.Shipment{
		ID:             shipmentID,
		ClientEmail:    strPtr("acme@example.com"),
		ClientName:     "Acme Ltd",
		Containers20ft: 2,
		Containers40ft: 1,
		FileRefs:       storage.FileRefs{BillOfLadingFiles: []string{"/uploads/a.pdf"}},
		Status:         status,
		CreatedAt:      fixedTime,
		UpdatedAt:      fixedTime,
	}
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = f.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleSignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(f *fixture)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "created",
			body: `{"name":"Jane","email":"Acme@Example.com","password":"secret1","companyName":"Acme Ltd"}`,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().
					SignUp(gomock.Any(), storage.SignUpInput{Name: "Jane", Email: "Acme@Example.com", Password: "secret1", CompanyName: "Acme Ltd"}).
					Return(&storage.Client{ID: "c-1", Email: "acme@example.com", Name: "Jane", CompanyName: "Acme Ltd"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"acme@example.com"`,
		},
		{
			name: "duplicate email",
			body: `{"name":"Jane","email":"acme@example.com","password":"secret1","companyName":"Acme Ltd"}`,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(nil, storage.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"already exists"`,
		},
		{
			name:           "unknown field",
			body:           `{"name":"Jane","isAdmin":true}`,
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "trailing data",
			body:           `{"name":"Jane"} {"name":"Joe"}`,
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `unexpected trailing data`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMocks(f)

			rr := f.do(t, http.MethodPost, "/api/signup", tc.body, nil)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		})
	}
}

func TestHandleLogin(t *testing.T) {
	t.Run("client", func(t *testing.T) {
		f := newFixture(t)
		f.storage.EXPECT().
			AuthenticateClient(gomock.Any(), "acme@example.com", "secret1").
			Return(&storage.Client{ID: "c-1", Email: "acme@example.com", Name: "Jane"}, nil)

		rr := f.do(t, http.MethodPost, "/api/login", `{"email":"acme@example.com","password":"secret1"}`, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		got, err := f.tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, clientPrincipal, got)
		assert.Equal(t, clientPrincipal, resp.User)
	})

	t.Run("admin", func(t *testing.T) {
		f := newFixture(t)
		f.storage.EXPECT().
			AuthenticateAdmin(gomock.Any(), "root@example.com", "secret12").
			Return(&storage.Admin{ID: "a-0", Email: "root@example.com", Name: "Root", IsAdmin: true, IsSuperAdmin: true}, nil)

		rr := f.do(t, http.MethodPost, "/api/admin/login", `{"email":"root@example.com","password":"secret12"}`, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		got, err := f.tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, superPrincipal, got)
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newFixture(t)
		f.storage.EXPECT().
			AuthenticateClient(gomock.Any(), "acme@example.com", "wrong").
			Return(nil, storage.ErrUnauthorized)

		rr := f.do(t, http.MethodPost, "/api/login", `{"email":"acme@example.com","password":"wrong"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthMiddleware_InvalidTokenIsAnonymous(t *testing.T) {
	f := newFixture(t)
	f.storage.EXPECT().GetProfile(gomock.Any(), auth.Principal{}).Return(nil, storage.ErrUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleProfile(t *testing.T) {
	f := newFixture(t)
	profile := &storage.Client{ID: "c-1", Email: "acme@example.com", Name: "Jane", CompanyName: "Acme Ltd", City: "Oslo"}

	f.storage.EXPECT().GetProfile(gomock.Any(), clientPrincipal).Return(profile, nil)
	rr := f.do(t, http.MethodGet, "/api/profile", "", &clientPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"city":"Oslo"`)

	f.storage.EXPECT().
		UpdateProfile(gomock.Any(), clientPrincipal, storage.ProfileInput{Name: "Jane", CompanyName: "Acme AS", City: "Bergen"}).
		Return(profile, nil)
	rr = f.do(t, http.MethodPut, "/api/profile",
		`{"name":"Jane","companyName":"Acme AS","city":"Bergen","email":"ignored@example.com"}`, &clientPrincipal)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.storage.EXPECT().GetProfile(gomock.Any(), adminPrincipal).Return(nil, storage.ErrForbidden)
	rr = f.do(t, http.MethodGet, "/api/profile", "", &adminPrincipal)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestHandleCreateShipment(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		principal      *auth.Principal
		setupMocks     func(f *fixture)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "client creates own shipment",
			body:      `{"containers20ft":2,"containers40ft":1,"billOfLadingFiles":["/uploads/a.pdf"],"packingListFile":"/uploads/b.pdf"}`,
			principal: &clientPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().
					CreateShipment(gomock.Any(), clientPrincipal, storage.CreateShipmentInput{
						Containers20ft: 2,
						Containers40ft: 1,
						Files: storage.FileRefs{
							BillOfLadingFiles: []string{"/uploads/a.pdf"},
							PackingListFile:   strPtr("/uploads/b.pdf"),
						},
					}).
					Return(sampleShipment(storage.StatusUnderReview), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"UNDER_REVIEW"`,
		},
		{
			name:      "admin names unknown owner",
			body:      `{"clientEmail":"ghost@example.com","containers20ft":1,"containers40ft":0}`,
			principal: &adminPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().
					CreateShipment(gomock.Any(), adminPrincipal, gomock.Any()).
					Return(nil, storage.ErrOwnerNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"owner not found"`,
		},
		{
			name:           "fractional container count",
			body:           `{"containers20ft":1.5,"containers40ft":0}`,
			principal:      &clientPrincipal,
			setupMocks:     func(*fixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid input`,
		},
		{
			name:      "storage failure",
			body:      `{"containers20ft":1,"containers40ft":0}`,
			principal: &clientPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().CreateShipment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMocks(f)

			rr := f.do(t, http.MethodPost, "/api/shipments", tc.body, tc.principal)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleListShipments(t *testing.T) {
	f := newFixture(t)
	f.storage.EXPECT().
		ListShipments(gomock.Any(), adminPrincipal, storage.ShipmentFilter{OwnerEmail: "acme@example.com"}).
		Return([]storage.Shipment{*sampleShipment(storage.StatusAccepted)}, nil)

	rr := f.do(t, http.MethodGet, "/api/shipments?clientEmail=acme@example.com", "", &adminPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var got []storage.Shipment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, storage.StatusAccepted, got[0].Status)

	f.storage.EXPECT().ListShipments(gomock.Any(), auth.Principal{}, storage.ShipmentFilter{}).Return(nil, storage.ErrUnauthorized)
	rr = f.do(t, http.MethodGet, "/api/shipments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleShipmentReads(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().ShipmentSummary(gomock.Any(), clientPrincipal, "").
		Return(&storage.ShipmentSummary{Total: 3, UnderReview: 1, Accepted: 2, Containers20ft: 4, TotalContainers: 4}, nil)
	rr := f.do(t, http.MethodGet, "/api/shipments/summary", "", &clientPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"totalContainers":4`)

	f.storage.EXPECT().PendingShipments(gomock.Any(), adminPrincipal).
		Return([]storage.Shipment{*sampleShipment(storage.StatusUnderReview)}, nil)
	rr = f.do(t, http.MethodGet, "/api/shipments/pending", "", &adminPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), shipmentID)

	f.storage.EXPECT().GetShipment(gomock.Any(), clientPrincipal, shipmentID).Return(nil, storage.ErrNotFound)
	rr = f.do(t, http.MethodGet, "/api/shipments/"+shipmentID, "", &clientPrincipal)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleUpdateShipmentStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		principal      *auth.Principal
		setupMocks     func(f *fixture)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "accepted",
			body:      `{"status":"ACCEPTED"}`,
			principal: &adminPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().GetShipment(gomock.Any(), adminPrincipal, shipmentID).
					Return(sampleShipment(storage.StatusUnderReview), nil)
				f.storage.EXPECT().UpdateShipmentStatus(gomock.Any(), adminPrincipal, shipmentID, storage.StatusAccepted).
					Return(sampleShipment(storage.StatusAccepted), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ACCEPTED"`,
		},
		{
			name:      "already decided",
			body:      `{"status":"DECLINED"}`,
			principal: &adminPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().GetShipment(gomock.Any(), adminPrincipal, shipmentID).
					Return(sampleShipment(storage.StatusAccepted), nil)
				f.storage.EXPECT().UpdateShipmentStatus(gomock.Any(), adminPrincipal, shipmentID, storage.StatusDeclined).
					Return(nil, storage.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"invalid status transition"`,
		},
		{
			name:      "unknown shipment",
			body:      `{"status":"ACCEPTED"}`,
			principal: &adminPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().GetShipment(gomock.Any(), adminPrincipal, shipmentID).Return(nil, storage.ErrNotFound)
				f.storage.EXPECT().UpdateShipmentStatus(gomock.Any(), adminPrincipal, shipmentID, storage.StatusAccepted).
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "client may not review",
			body:      `{"status":"ACCEPTED"}`,
			principal: &clientPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().GetShipment(gomock.Any(), clientPrincipal, shipmentID).
					Return(sampleShipment(storage.StatusUnderReview), nil)
				f.storage.EXPECT().UpdateShipmentStatus(gomock.Any(), clientPrincipal, shipmentID, storage.StatusAccepted).
					Return(nil, storage.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "missing body",
			principal: &adminPrincipal,
			setupMocks: func(f *fixture) {
				f.storage.EXPECT().GetShipment(gomock.Any(), adminPrincipal, shipmentID).
					Return(sampleShipment(storage.StatusUnderReview), nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setupMocks(f)

			rr := f.do(t, http.MethodPut, "/api/shipments/"+shipmentID, tc.body, tc.principal)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleDeleteShipment(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().DeleteShipment(gomock.Any(), adminPrincipal, shipmentID).Return(nil)
	rr := f.do(t, http.MethodDelete, "/api/shipments/"+shipmentID, "", &adminPrincipal)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Shipment deleted successfully"}`, rr.Body.String())

	f.storage.EXPECT().DeleteShipment(gomock.Any(), adminPrincipal, shipmentID).Return(storage.ErrNotFound)
	rr = f.do(t, http.MethodDelete, "/api/shipments/"+shipmentID, "", &adminPrincipal)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func multipartBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("billOfLading", "bol.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	send := func(t *testing.T, f *fixture, body io.Reader, contentType string, p *auth.Principal) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		if p != nil {
			token, _, err := f.tokens.Issue(*p)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("stored", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().MaxFileBytes().Return(int64(10 << 20))
		f.uploads.EXPECT().Accept(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mr *multipart.Reader) (*upload.Result, error) {
				part, err := mr.NextPart()
				require.NoError(t, err)
				assert.Equal(t, "billOfLading", part.FormName())
				return &upload.Result{BillOfLading: []string{"/uploads/0b7f.pdf"}}, nil
			})

		body, ct := multipartBody(t)
		rr := send(t, f, body, ct, &clientPrincipal)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"billOfLading":["/uploads/0b7f.pdf"]}`, rr.Body.String())
	})

	t.Run("too large", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().MaxFileBytes().Return(int64(10 << 20))
		f.uploads.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(nil, storage.ErrPayloadTooLarge)

		body, ct := multipartBody(t)
		rr := send(t, f, body, ct, &adminPrincipal)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().MaxFileBytes().Return(int64(10 << 20))

		rr := send(t, f, strings.NewReader(`{}`), "application/json", &clientPrincipal)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		body, ct := multipartBody(t)
		rr := send(t, f, body, ct, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestHandleGetFile(t *testing.T) {
	const name = "0b7f3c1e-2d4a-4c55-8e0f-5a1b2c3d4e5f.pdf"

	f := newFixture(t)
	f.uploads.EXPECT().Open(gomock.Any(), name).
		Return(io.NopCloser(strings.NewReader("%PDF-1.4")), "application/pdf", nil)

	rr := f.do(t, http.MethodGet, "/uploads/"+name, "", &clientPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rr.Body.String())

	f.uploads.EXPECT().Open(gomock.Any(), "missing.pdf").Return(nil, "", storage.ErrNotFound)
	rr = f.do(t, http.MethodGet, "/uploads/missing.pdf", "", &adminPrincipal)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, http.MethodGet, "/uploads/"+name, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleAdminDirectory(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().CountClients(gomock.Any(), adminPrincipal).Return(3, nil)
	rr := f.do(t, http.MethodGet, "/api/users", "", &adminPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":3}`, rr.Body.String())

	f.storage.EXPECT().ListClients(gomock.Any(), adminPrincipal).Return([]storage.Client{{ID: "c-1", Email: "acme@example.com"}}, nil)
	rr = f.do(t, http.MethodGet, "/api/admin/clients", "", &adminPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"acme@example.com"`)

	f.storage.EXPECT().
		UpdateClient(gomock.Any(), adminPrincipal, "c-1", storage.ClientUpdateInput{Email: "new@example.com", Name: "Jane", CompanyName: "Acme"}).
		Return(&storage.Client{ID: "c-1", Email: "new@example.com"}, nil)
	rr = f.do(t, http.MethodPut, "/api/admin/clients", `{"id":"c-1","email":"new@example.com","name":"Jane","companyName":"Acme"}`, &adminPrincipal)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.storage.EXPECT().DeleteClient(gomock.Any(), adminPrincipal, "c-1").Return(nil)
	rr = f.do(t, http.MethodDelete, "/api/admin/clients/c-1", "", &adminPrincipal)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.storage.EXPECT().ListAdmins(gomock.Any(), adminPrincipal).Return([]storage.Admin{{ID: "a-1", Email: "ops@example.com", IsAdmin: true}}, nil)
	rr = f.do(t, http.MethodGet, "/api/admin-users", "", &adminPrincipal)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.storage.EXPECT().
		CreateAdmin(gomock.Any(), superPrincipal, storage.AdminInput{Name: "New", Email: "new@example.com", Password: "secret12"}).
		Return(&storage.Admin{ID: "a-2", Email: "new@example.com", IsAdmin: true}, nil)
	rr = f.do(t, http.MethodPost, "/api/admin-users", `{"name":"New","email":"new@example.com","password":"secret12"}`, &superPrincipal)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret12")

	f.storage.EXPECT().
		UpdateAdmin(gomock.Any(), superPrincipal, "a-2", storage.AdminInput{Name: "New", Email: "new@example.com", IsSuperAdmin: true}).
		Return(&storage.Admin{ID: "a-2", Email: "new@example.com", IsAdmin: true, IsSuperAdmin: true}, nil)
	rr = f.do(t, http.MethodPut, "/api/admin-users/a-2", `{"name":"New","email":"new@example.com","isSuperAdmin":true}`, &superPrincipal)
	assert.Equal(t, http.StatusOK, rr.Code)

	f.storage.EXPECT().DeleteAdmin(gomock.Any(), adminPrincipal, "a-2").Return(storage.ErrForbidden)
	rr = f.do(t, http.MethodDelete, "/api/admin-users/a-2", "", &adminPrincipal)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	f.storage.EXPECT().DeleteAdmin(gomock.Any(), superPrincipal, "a-0").Return(storage.ErrInvalidInput)
	rr = f.do(t, http.MethodDelete, "/api/admin-users/a-0", "", &superPrincipal)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleActivities(t *testing.T) {
	f := newFixture(t)
	f.feed.EXPECT().Recent(gomock.Any(), adminPrincipal).Return([]activity.Activity{
		{ID: "user-c-1", Type: activity.TypeClientSignup, Message: "New client signup: acme@example.com (Acme Ltd).", CreatedAt: fixedTime},
	}, nil)

	rr := f.do(t, http.MethodGet, "/api/admin/activities", "", &adminPrincipal)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.JSONEq(t, `[{"id":"user-c-1","type":"client_signup","message":"New client signup: acme@example.com (Acme Ltd).","createdAt":"2024-03-01T10:00:00Z"}]`, rr.Body.String())

	f.feed.EXPECT().Recent(gomock.Any(), clientPrincipal).Return(nil, storage.ErrForbidden)
	rr = f.do(t, http.MethodGet, "/api/admin/activities", "", &clientPrincipal)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
