package orders

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPendiente, StatusEnProceso},
		{StatusEnProceso, StatusTerminada},
		{StatusTerminada, StatusEntregada},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	all := []Status{StatusPendiente, StatusEnProceso, StatusTerminada, StatusEntregada}

	t.Run("no reverse transitions", func(t *testing.T) {
		for i, from := range all {
			for _, to := range all[:i+1] {
				if CanTransition(from, to) {
					t.Errorf("%s -> %s must not be allowed", from, to)
				}
			}
		}
	})

	t.Run("no skipping", func(t *testing.T) {
		if CanTransition(StatusPendiente, StatusTerminada) {
			t.Error("Pendiente -> Terminada must not be allowed")
		}
		if CanTransition(StatusPendiente, StatusEntregada) {
			t.Error("Pendiente -> Entregada must not be allowed")
		}
		if CanTransition(StatusEnProceso, StatusEntregada) {
			t.Error("En proceso -> Entregada must not be allowed")
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		for _, to := range all {
			if CanTransition(StatusEntregada, to) {
				t.Errorf("Entregada -> %s must not be allowed", to)
			}
		}
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPendiente, StatusEnProceso, StatusTerminada, StatusEntregada} {
		if !ValidStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidStatus("Cancelada") {
		t.Error("unknown status accepted")
	}
}
