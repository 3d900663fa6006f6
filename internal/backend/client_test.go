// README: Backend client tests against a local httptest server.
package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"buensabor/internal/board"
)

func TestListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/pedido" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer svc-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"estado":"PENDIENTE","total":120.5,"tiempoEstimadoMinutos":15}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken("svc-token"))
	orders, err := c.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 1 || orders[0].Status != board.StatusPending {
		t.Errorf("orders = %+v", orders)
	}
}

func TestRequestTransition(t *testing.T) {
	t.Run("sends the target state as a query param", func(t *testing.T) {
		var seen string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/pedido/7/estado" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			seen = r.URL.Query().Get("nuevoEstado")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, StaticToken(""))
		if err := c.RequestTransition(context.Background(), 7, board.StatusReady); err != nil {
			t.Fatalf("request: %v", err)
		}
		if seen != "LISTO" {
			t.Errorf("nuevoEstado = %q", seen)
		}
	})

	t.Run("non-2xx becomes an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "transición inválida", http.StatusConflict)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, StaticToken(""))
		err := c.RequestTransition(context.Background(), 7, board.StatusReady)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "409") {
			t.Errorf("error should carry the status: %v", err)
		}
	})
}

func TestOrderDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pedido/3" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id":3,"estado":"LISTO","total":900,
			"numeroPedido":1042,"formaPago":"EFECTIVO","tipoEnvio":"DELIVERY",
			"sucursal":{"id":1,"nombre":"Centro"},
			"domicilio":{"calle":"San Martín","numero":450,"localidad":{"nombre":"Mendoza","provincia":{"nombre":"Mendoza","pais":{"nombre":"Argentina"}}}},
			"detalles":[{"id":1,"cantidad":2,"subTotal":900,"articulo":{"id":5,"denominacion":"Pizza napolitana"}}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticToken(""))
	d, err := c.OrderDetail(context.Background(), 3)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.OrderNumber != 1042 || d.Branch.Name != "Centro" || len(d.Lines) != 1 {
		t.Errorf("detail = %+v", d)
	}
	if d.Address.Locality.Province.Country.Name != "Argentina" {
		t.Errorf("address = %+v", d.Address)
	}
}

func TestTokenProviderFailureShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, failingTokens{})
	if _, err := c.ListOrders(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("request went out without a token")
	}
}

type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) {
	return "", context.DeadlineExceeded
}
