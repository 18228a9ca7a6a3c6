package orders

// Status is the order lifecycle state as the kitchen and cashier see it.
// The progression is strictly linear; there is no cancellation state.
type Status string

const (
	StatusPendiente Status = "Pendiente"
	StatusEnProceso Status = "En proceso"
	StatusTerminada Status = "Terminada"
	StatusEntregada Status = "Entregada"
)

var validNext = map[Status]map[Status]bool{
	StatusPendiente: {StatusEnProceso: true},
	StatusEnProceso: {StatusTerminada: true},
	StatusTerminada: {StatusEntregada: true},
	StatusEntregada: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}
