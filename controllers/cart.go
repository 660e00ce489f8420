package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"clicafe-api/middleware"
	"clicafe-api/models"
	"clicafe-api/store"
	"clicafe-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartController manages the authenticated user's cart rows.
type CartController struct {
	Carts store.CartStore
	Users store.UserStore
}

// NewCartController creates a CartController backed by MongoDB.
func NewCartController(client *mongo.Client) *CartController {
	return &CartController{
		Carts: store.NewMongoCartStore(client),
		Users: store.NewMongoUserStore(client),
	}
}

// currentUser resolves the request's JWT claims to a stored user.
func (cc *CartController) currentUser(ctx context.Context, r *http.Request) (*models.User, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return nil, false
	}
	user, err := cc.Users.ByEmail(ctx, claims.Email)
	if err != nil {
		return nil, false
	}
	return user, true
}

// AddToCart adds a product row to the user's cart, merging the quantity when
// the product is already there.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, ok := cc.currentUser(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ProductID primitive.ObjectID `json:"product_id"`
		Quantity  int                `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.ProductID.IsZero() || input.Quantity <= 0 {
		http.Error(w, "Invalid product or quantity", http.StatusBadRequest)
		return
	}

	item := models.CartItem{
		UserID:    user.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	}
	if err := cc.Carts.AddRow(ctx, item); err != nil {
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode("Item added to cart")
}

// GetCart retrieves the user's cart rows with their products joined
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, ok := cc.currentUser(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := cc.Carts.RowsForUser(ctx, user.ID)
	if err != nil {
		http.Error(w, "Error fetching cart", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []models.CartRow{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// RemoveFromCart removes the user's cart row for a product
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, ok := cc.currentUser(ctx, r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["product_id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	if err := cc.Carts.DeleteByProduct(ctx, user.ID, productID); err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Item not in cart", http.StatusNotFound)
			return
		}
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode("Item removed from cart")
}
