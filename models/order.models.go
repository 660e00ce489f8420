package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order estados. Checkout always creates orders as EstadoPagada; the admin
// status-update route moves them through the rest.
const (
	EstadoPagada    = "pagada"
	EstadoEnviada   = "enviada"
	EstadoEntregada = "entregada"
	EstadoCancelada = "cancelada"
)

// ValidEstado reports whether estado is one of the known order states.
func ValidEstado(estado string) bool {
	switch estado {
	case EstadoPagada, EstadoEnviada, EstadoEntregada, EstadoCancelada:
		return true
	}
	return false
}

// Order is the immutable record created by checkout. Productos is a snapshot
// of the purchased cart rows with prices frozen at purchase time; Total is the
// rounded sum of their subtotals and must match the amount charged.
//
// JSON keys follow the store's public wire contract (Spanish), which predates
// this service.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Total          int64              `bson:"total" json:"total"`
	IDPago         string             `bson:"id_pago" json:"idPago"`
	DireccionEnvio interface{}        `bson:"direccion_envio" json:"direccionEnvio"`
	Productos      []OrderProduct     `bson:"productos" json:"productos"`
	Estado         string             `bson:"estado" json:"estado"`
	FechaPago      time.Time          `bson:"fecha_pago" json:"fechaPago"`
	NumeroOrden    string             `bson:"numero_orden" json:"numeroOrden"`
	MetodoPago     string             `bson:"metodo_pago" json:"metodoPago"`
	PublishedAt    time.Time          `bson:"published_at" json:"publishedAt"`
}

// OrderProduct is one line of an order's productos snapshot: the purchased
// product with price, quantity and subtotal frozen at checkout time.
type OrderProduct struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"id"`
	Nombre    string             `bson:"nombre" json:"nombre"`
	Precio    float64            `bson:"precio" json:"precio"`
	Cantidad  int                `bson:"cantidad" json:"cantidad"`
	Subtotal  float64            `bson:"subtotal" json:"subtotal"`
}
