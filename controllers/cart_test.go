package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clicafe-api/middleware"
	"clicafe-api/models"
	"clicafe-api/store"
	"clicafe-api/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCartController(rows []models.CartRow) (*CartController, *fakeCartStore) {
	carts := &fakeCartStore{Rows: rows}
	cc := &CartController{
		Carts: carts,
		Users: &fakeUserStore{User: testUser()},
	}
	return cc, carts
}

func withClaims(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, &utils.Claims{Email: "ana@example.com", Role: "user"})
	return req.WithContext(ctx)
}

func TestAddToCart_Unauthorized(t *testing.T) {
	cc, _ := newCartController(nil)

	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	cc.AddToCart(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	cc, carts := newCartController(nil)
	body := fmt.Sprintf(`{"product_id":%q,"quantity":0}`, primitive.NewObjectID().Hex())

	req := withClaims(httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body)))
	rr := httptest.NewRecorder()
	cc.AddToCart(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, carts.Added)
}

func TestAddToCart_Success(t *testing.T) {
	cc, carts := newCartController(nil)
	productID := primitive.NewObjectID()
	body := fmt.Sprintf(`{"product_id":%q,"quantity":2}`, productID.Hex())

	req := withClaims(httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body)))
	rr := httptest.NewRecorder()
	cc.AddToCart(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, carts.Added, 1)
	assert.Equal(t, productID, carts.Added[0].ProductID)
	assert.Equal(t, 2, carts.Added[0].Quantity)
}

func TestGetCart_EmptyIsJSONArray(t *testing.T) {
	cc, _ := newCartController(nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/cart", nil))
	rr := httptest.NewRecorder()
	cc.GetCart(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestGetCart_ReturnsRowsWithProducts(t *testing.T) {
	rows := []models.CartRow{cartRow("Café", 100, 2)}
	cc, _ := newCartController(rows)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/cart", nil))
	rr := httptest.NewRecorder()
	cc.GetCart(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.CartRow
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Product)
	assert.Equal(t, "Café", got[0].Product.Name)
}

func TestRemoveFromCart_NotFound(t *testing.T) {
	cc, carts := newCartController(nil)
	carts.RemoveErr = store.ErrNotFound
	productID := primitive.NewObjectID().Hex()

	req := httptest.NewRequest(http.MethodDelete, "/cart/"+productID, nil)
	req = mux.SetURLVars(req, map[string]string{"product_id": productID})
	rr := httptest.NewRecorder()
	cc.RemoveFromCart(rr, withClaims(req))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRemoveFromCart_Success(t *testing.T) {
	cc, carts := newCartController(nil)
	productID := primitive.NewObjectID()

	req := httptest.NewRequest(http.MethodDelete, "/cart/"+productID.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"product_id": productID.Hex()})
	rr := httptest.NewRecorder()
	cc.RemoveFromCart(rr, withClaims(req))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, carts.Removed, 1)
	assert.Equal(t, productID, carts.Removed[0])
}
