package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/Abaaza/wallmastersbackend/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

type fakeAddressUsecase struct {
	list       func(ctx context.Context, userID string) ([]domain.Address, error)
	add        func(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error)
	remove     func(ctx context.Context, userID, addressID string) ([]domain.Address, error)
	setDefault func(ctx context.Context, userID, addressID string) ([]domain.Address, error)
}

func (f *fakeAddressUsecase) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return f.list(ctx, userID)
}

func (f *fakeAddressUsecase) Add(ctx context.Context, userID string, addr domain.Address) ([]domain.Address, error) {
	return f.add(ctx, userID, addr)
}

func (f *fakeAddressUsecase) Remove(ctx context.Context, userID, addressID string) ([]domain.Address, error) {
	return f.remove(ctx, userID, addressID)
}

func (f *fakeAddressUsecase) SetDefault(ctx context.Context, userID, addressID string) ([]domain.Address, error) {
	return f.setDefault(ctx, userID, addressID)
}

func newAddressEngine(uc *fakeAddressUsecase) *gin.Engine {
	h := handler.NewAddressHandler(uc, testLogger())
	r := gin.New()
	r.GET("/addresses/:userId", h.List)
	r.POST("/addresses/:userId", h.Add)
	r.DELETE("/addresses/:userId/:addressId", h.Remove)
	r.PUT("/addresses/:userId/default/:addressId", h.SetDefault)
	return r
}

const (
	testUserID    = "0b83ae40-9f47-4f3a-93d4-2b9a2f3f61aa"
	testAddressID = "5f1c6a1d-8f24-4dc9-9e4a-b57a0ac2d302"
)

const validAddressBody = `{
	"name": "Alice",
	"email": "alice@example.com",
	"mobileNo": "0100000000",
	"houseNo": "12",
	"street": "Main St",
	"city": "Cairo",
	"postalCode": "11511"
}`

func TestListAddresses_ReturnsBareArray(t *testing.T) {
	uc := &fakeAddressUsecase{
		list: func(_ context.Context, _ string) ([]domain.Address, error) {
			return []domain.Address{{ID: testAddressID, Name: "Alice", IsDefault: true}}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/addresses/"+testUserID, nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got []domain.Address
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(got) != 1 || got[0].ID != testAddressID {
		t.Errorf("got %+v", got)
	}
}

func TestListAddresses_EmptyIsNotNull(t *testing.T) {
	uc := &fakeAddressUsecase{
		list: func(_ context.Context, _ string) ([]domain.Address, error) {
			return []domain.Address{}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/addresses/"+testUserID, nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestAddAddress_Success_ReturnsEnvelope(t *testing.T) {
	uc := &fakeAddressUsecase{
		add: func(_ context.Context, _ string, addr domain.Address) ([]domain.Address, error) {
			addr.ID = testAddressID
			addr.IsDefault = true
			return []domain.Address{addr}, nil
		},
	}

	w := postJSON(t, newAddressEngine(uc), "/addresses/"+testUserID, validAddressBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp struct {
		Message        string           `json:"message"`
		SavedAddresses []domain.Address `json:"savedAddresses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.SavedAddresses) != 1 || !resp.SavedAddresses[0].IsDefault {
		t.Errorf("savedAddresses = %+v", resp.SavedAddresses)
	}
}

func TestAddAddress_MissingField_Returns400(t *testing.T) {
	uc := &fakeAddressUsecase{}

	w := postJSON(t, newAddressEngine(uc), "/addresses/"+testUserID,
		`{"name":"Alice","email":"alice@example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAddAddress_Duplicate_Returns409(t *testing.T) {
	uc := &fakeAddressUsecase{
		add: func(_ context.Context, _ string, _ domain.Address) ([]domain.Address, error) {
			return nil, domain.ErrDuplicateAddress
		},
	}

	w := postJSON(t, newAddressEngine(uc), "/addresses/"+testUserID, validAddressBody)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Duplicate address detected.") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAddAddress_UnknownUser_Returns404(t *testing.T) {
	uc := &fakeAddressUsecase{
		add: func(_ context.Context, _ string, _ domain.Address) ([]domain.Address, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := postJSON(t, newAddressEngine(uc), "/addresses/"+testUserID, validAddressBody)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRemoveAddress_MalformedIDs_Returns400(t *testing.T) {
	uc := &fakeAddressUsecase{
		remove: func(_ context.Context, _, _ string) ([]domain.Address, error) {
			t.Fatal("usecase called with malformed ids")
			return nil, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/addresses/not-a-uuid/also-not", nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRemoveAddress_NotFound_Returns404(t *testing.T) {
	uc := &fakeAddressUsecase{
		remove: func(_ context.Context, _, _ string) ([]domain.Address, error) {
			return nil, domain.ErrAddressNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/addresses/"+testUserID+"/"+testAddressID, nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRemoveAddress_Success_ReturnsRemaining(t *testing.T) {
	uc := &fakeAddressUsecase{
		remove: func(_ context.Context, _, _ string) ([]domain.Address, error) {
			return []domain.Address{{ID: testAddressID, IsDefault: true}}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/addresses/"+testUserID+"/"+testAddressID, nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"savedAddresses"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSetDefaultAddress_MalformedIDs_Returns400(t *testing.T) {
	uc := &fakeAddressUsecase{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/addresses/"+testUserID+"/default/nope", nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSetDefaultAddress_Success(t *testing.T) {
	uc := &fakeAddressUsecase{
		setDefault: func(_ context.Context, _, addressID string) ([]domain.Address, error) {
			return []domain.Address{{ID: addressID, IsDefault: true}}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/addresses/"+testUserID+"/default/"+testAddressID, nil)
	newAddressEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Default address updated successfully") {
		t.Errorf("body = %s", w.Body.String())
	}
}
