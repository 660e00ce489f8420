package controllers

import (
	"context"
	"errors"

	"clicafe-api/models"
	"clicafe-api/store"

	"github.com/stripe/stripe-go/v82"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCartStore implements store.CartStore for testing
type fakeCartStore struct {
	Rows    []models.CartRow
	RowsErr error

	Added     []models.CartItem
	AddErr    error
	Deleted   []primitive.ObjectID // row ids passed to DeleteRow, in order
	DeleteErr error
	Removed   []primitive.ObjectID // product ids passed to DeleteByProduct
	RemoveErr error
}

func (f *fakeCartStore) RowsForUser(_ context.Context, _ primitive.ObjectID) ([]models.CartRow, error) {
	return f.Rows, f.RowsErr
}

func (f *fakeCartStore) AddRow(_ context.Context, item models.CartItem) error {
	if f.AddErr != nil {
		return f.AddErr
	}
	f.Added = append(f.Added, item)
	return nil
}

func (f *fakeCartStore) DeleteRow(_ context.Context, rowID primitive.ObjectID) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, rowID)
	return nil
}

func (f *fakeCartStore) DeleteByProduct(_ context.Context, _, productID primitive.ObjectID) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.Removed = append(f.Removed, productID)
	return nil
}

// fakeOrderStore implements store.OrderStore for testing
type fakeOrderStore struct {
	Created   *models.Order // captures the order passed to Create
	CreateErr error

	Orders     []models.Order
	ForUserErr error

	ByIDOrder *models.Order
	UpdateErr error
	Updated   map[primitive.ObjectID]string
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	if f.CreateErr != nil {
		return primitive.NilObjectID, f.CreateErr
	}
	f.Created = order
	return primitive.NewObjectID(), nil
}

func (f *fakeOrderStore) ForUser(_ context.Context, _ primitive.ObjectID) ([]models.Order, error) {
	return f.Orders, f.ForUserErr
}

func (f *fakeOrderStore) ByID(_ context.Context, _ primitive.ObjectID) (*models.Order, error) {
	if f.ByIDOrder == nil {
		return nil, store.ErrNotFound
	}
	return f.ByIDOrder, nil
}

func (f *fakeOrderStore) UpdateEstado(_ context.Context, id primitive.ObjectID, estado string) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if f.Updated == nil {
		f.Updated = map[primitive.ObjectID]string{}
	}
	f.Updated[id] = estado
	return nil
}

// fakeUserStore implements store.UserStore for testing
type fakeUserStore struct {
	User *models.User
}

func (f *fakeUserStore) ByEmail(_ context.Context, _ string) (*models.User, error) {
	if f.User == nil {
		return nil, store.ErrNotFound
	}
	return f.User, nil
}

func (f *fakeUserStore) ByID(_ context.Context, _ primitive.ObjectID) (*models.User, error) {
	if f.User == nil {
		return nil, store.ErrNotFound
	}
	return f.User, nil
}

// fakePayments implements utils.PaymentProcessor for testing
type fakePayments struct {
	Intent *stripe.PaymentIntent
	Err    error

	Calls       int
	Amount      int64
	Method      string
	Description string
}

func (f *fakePayments) CreatePaymentIntent(amount int64, paymentMethod, description string) (*stripe.PaymentIntent, error) {
	f.Calls++
	f.Amount = amount
	f.Method = paymentMethod
	f.Description = description
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Intent, nil
}

// fakeEmail implements utils.EmailSender for testing
type fakeEmail struct {
	Err   error
	Sent  int
	To    string
	Texts []string
}

func (f *fakeEmail) SendEmail(toEmail, subject, textContent, htmlContent string) error {
	f.Sent++
	f.To = toEmail
	f.Texts = append(f.Texts, textContent)
	if f.Err != nil {
		return f.Err
	}
	return nil
}

var errBoom = errors.New("boom")
