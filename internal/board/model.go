// README: Order model, status vocabulary, and role-gated transition policy.
package board

import "buensabor/internal/identity"

// Status uses the backend's wire vocabulary unchanged.
type Status string

const (
	StatusPending   Status = "PENDIENTE"
	StatusPreparing Status = "PREPARACION"
	StatusReady     Status = "LISTO"
	StatusDelivered Status = "ENTREGADO"
	StatusCancelled Status = "CANCELADO"
)

// Order is the board's read-through copy of a backend order. The backend
// remains authoritative; every feed message carries the full record.
type Order struct {
	ID               int     `json:"id"`
	PlacedAt         string  `json:"fechaPedido"`
	Status           Status  `json:"estado"`
	Total            float64 `json:"total"`
	EstimatedMinutes int     `json:"tiempoEstimadoMinutos"`
	InitPoint        string  `json:"initPoint,omitempty"`
}

// StatusMeta is per-status display metadata for the dashboard UI.
type StatusMeta struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
	Icon  string `json:"icon"`
}

var statusMeta = map[Status]StatusMeta{
	StatusPending:   {Label: "Pendiente", Badge: "warning", Icon: "clock"},
	StatusPreparing: {Label: "En preparación", Badge: "info", Icon: "shopping-bag"},
	StatusReady:     {Label: "Listo para entrega", Badge: "secondary", Icon: "check"},
	StatusDelivered: {Label: "Entregado", Badge: "success", Icon: "check"},
	StatusCancelled: {Label: "Cancelado", Badge: "danger", Icon: "x"},
}

// MetaFor returns display metadata for a status. Unknown statuses get a
// warning badge so the UI still renders something sensible.
func MetaFor(s Status) StatusMeta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return StatusMeta{Label: string(s), Badge: "warning", Icon: "clock"}
}

// roleTransitions represents the per-role order state flow as code.
// Roles absent from the map may view orders but request no transitions.
var roleTransitions = map[identity.Role]map[Status][]Status{
	identity.RoleChef: {
		StatusPending: {StatusReady},
	},
	identity.RoleDelivery: {
		StatusReady: {StatusDelivered},
	},
	identity.RoleAdmin: {
		StatusPending:   {StatusPreparing, StatusReady, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusDelivered, StatusCancelled},
	},
}

// AllowedTransitions returns the target states the given role may request
// from the given current state. Pure lookup; never nil-panics.
func AllowedTransitions(role identity.Role, from Status) []Status {
	table, ok := roleTransitions[role]
	if !ok {
		return nil
	}
	return table[from]
}

// CanTransition reports whether role may request the from→to change.
func CanTransition(role identity.Role, from, to Status) bool {
	for _, s := range AllowedTransitions(role, from) {
		if s == to {
			return true
		}
	}
	return false
}

// visibleStatuses restricts which orders a role sees at all. This is
// independent of the transition policy: an order can be visible without
// being actionable.
var visibleStatuses = map[identity.Role][]Status{
	identity.RoleChef:     {StatusPending, StatusReady},
	identity.RoleDelivery: {StatusReady, StatusDelivered},
}

// Visible reports whether orders in the given state appear on the board
// for the given role. Roles without an entry see everything.
func Visible(role identity.Role, s Status) bool {
	allowed, ok := visibleStatuses[role]
	if !ok {
		return true
	}
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

// Tabs returns the status filter tabs the UI should offer the role,
// mirroring the role's visible statuses. The empty string means "all".
func Tabs(role identity.Role) []Status {
	if allowed, ok := visibleStatuses[role]; ok {
		return append([]Status{""}, allowed...)
	}
	return []Status{"", StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}
}

// OrderDetail is the extended record served by the backend's detail
// endpoint. The board never caches it.
type OrderDetail struct {
	Order
	OrderNumber   int          `json:"numeroPedido"`
	TotalCost     float64      `json:"totalCosto"`
	EstimatedDone string       `json:"horaEstimadaFinalizacion"`
	PaymentMethod string       `json:"formaPago"`
	ShippingType  string       `json:"tipoEnvio"`
	Branch        Branch       `json:"sucursal"`
	Address       Address      `json:"domicilio"`
	Lines         []DetailLine `json:"detalles"`
}

type Branch struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre"`
	Phone string `json:"telefono"`
	Email string `json:"email"`
}

type Address struct {
	Street     string `json:"calle"`
	Number     int    `json:"numero"`
	Floor      int    `json:"piso"`
	Apartment  int    `json:"nroDpto"`
	PostalCode int    `json:"cp"`
	Locality   struct {
		Name     string `json:"nombre"`
		Province struct {
			Name    string `json:"nombre"`
			Country struct {
				Name string `json:"nombre"`
			} `json:"pais"`
		} `json:"provincia"`
	} `json:"localidad"`
}

type DetailLine struct {
	ID       int     `json:"id"`
	Quantity int     `json:"cantidad"`
	Subtotal float64 `json:"subTotal"`
	Item     struct {
		ID          int    `json:"id"`
		Name        string `json:"denominacion"`
		Description string `json:"descripcion"`
	} `json:"articulo"`
}
