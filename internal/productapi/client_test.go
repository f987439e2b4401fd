package productapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrimatrix/internal/model"
)

func TestGetProductData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_product_data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "havregryn & melk" {
			t.Errorf("key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{"id": "srv-1", "ean": "7031100000001", "name": "Havregryn", "store": "Rema", "current_price": 29.9},
				{"ean": "7031100000002", "name": "Melk", "store": "Kiwi", "nutrition": {"protein": {"amount": 3.5, "unit": "g"}}}
			],
			"nutrition_codes": ["protein"],
			"stores": ["Rema", "Kiwi"]
		}`))
	}))
	defer srv.Close()

	data, err := New(srv.URL).GetProductData(context.Background(), "havregryn & melk")
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Products) != 2 {
		t.Fatalf("got %d products", len(data.Products))
	}
	if data.Products[0].ID != "srv-1" {
		t.Errorf("server id must be kept, got %q", data.Products[0].ID)
	}
	if data.Products[1].ID == "" {
		t.Error("missing id must be generated")
	}
	if !data.Products[1].Nutrition["protein"].Valid() {
		t.Error("nutrition lost in decode")
	}
	if *data.Products[0].CurrentPrice != 29.9 {
		t.Errorf("price = %v", *data.Products[0].CurrentPrice)
	}
	if data.Products[1].CurrentPrice != nil {
		t.Error("absent price must stay nil")
	}
}

func TestGetProductDataBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).GetProductData(context.Background(), "x"); err == nil {
		t.Fatal("expected an error on 500")
	}
}

func TestGetProductDataBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).GetProductData(context.Background(), "x"); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestNormalizeAssignsDistinctIDs(t *testing.T) {
	data := &model.ProductData{Products: []model.StoreOffer{
		{EAN: "1"}, {EAN: "2"},
	}}
	Normalize(data)
	if data.Products[0].ID == "" || data.Products[1].ID == "" {
		t.Fatal("ids must be filled")
	}
	if data.Products[0].ID == data.Products[1].ID {
		t.Fatal("generated ids must be distinct")
	}
}
