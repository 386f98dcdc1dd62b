package feed

import (
	"strings"
	"testing"

	"github.com/shopvoice/backend/internal/domain"
)

func testOpts() NormalizeOptions {
	return NormalizeOptions{
		SiteOrigin:  "https://shop.example.com",
		AssetPrefix: "https://cdn.example.com/assets",
	}
}

func TestNormalize_HeaderAliases(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want domain.CatalogItem
	}{
		{
			name: "canonical headers",
			csv:  "title,url,image,price,vendor,sku\nSG Standard,https://x.com/p/sg-standard,https://x.com/i/sg.jpg,$1999.00,Gibson,SG-STD",
			want: domain.CatalogItem{
				Title:      "SG Standard",
				ProductURL: "https://x.com/p/sg-standard",
				ImageURL:   "https://x.com/i/sg.jpg",
				Price:      "1999.00",
				SKU:        "SG-STD",
				Descriptor: "Gibson",
			},
		},
		{
			name: "scraper-style headers",
			csv:  "full-unstyled-link,full-unstyled-link href,motion-reduce src,price-item,vendor-name\nLes Paul Custom,/products/lp-custom,//cdn.x.com/lp.png,\"$2,499.00\",Epiphone",
			want: domain.CatalogItem{
				Title:      "Les Paul Custom",
				ProductURL: "https://shop.example.com/products/lp-custom",
				ImageURL:   "https://cdn.x.com/lp.png",
				Price:      "2499.00",
				SKU:        "lp-custom",
				Descriptor: "Epiphone",
			},
		},
		{
			name: "alias priority takes first non-empty",
			csv:  "name,model,link,cost\nFlying V,FV-84,https://x.com/p/flying-v,1299",
			want: domain.CatalogItem{
				Title:      "Flying V",
				ProductURL: "https://x.com/p/flying-v",
				Price:      "1299.00",
				SKU:        "flying-v",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Normalize(Parse(tt.csv, HeaderPresent), testOpts())
			if len(items) != 1 {
				t.Fatalf("Normalize() returned %d items, want 1", len(items))
			}
			got := items[0]
			if got.Title != tt.want.Title {
				t.Errorf("Title = %q, want %q", got.Title, tt.want.Title)
			}
			if got.ProductURL != tt.want.ProductURL {
				t.Errorf("ProductURL = %q, want %q", got.ProductURL, tt.want.ProductURL)
			}
			if got.ImageURL != tt.want.ImageURL {
				t.Errorf("ImageURL = %q, want %q", got.ImageURL, tt.want.ImageURL)
			}
			if got.Price != tt.want.Price {
				t.Errorf("Price = %q, want %q", got.Price, tt.want.Price)
			}
			if got.SKU != tt.want.SKU {
				t.Errorf("SKU = %q, want %q", got.SKU, tt.want.SKU)
			}
			if got.Descriptor != tt.want.Descriptor {
				t.Errorf("Descriptor = %q, want %q", got.Descriptor, tt.want.Descriptor)
			}
		})
	}
}

func TestNormalize_PositionalHeuristics(t *testing.T) {
	// Headerless export: url, image, title, price in arbitrary positions.
	csv := "https://x.com/p/explorer-80s,https://cdn.x.com/explorer.jpg,Explorer 80s Reissue,\"$1,799.00\""
	items := Normalize(Parse(csv, HeaderAbsent), testOpts())

	if len(items) != 1 {
		t.Fatalf("Normalize() returned %d items, want 1", len(items))
	}
	got := items[0]
	if got.Title != "Explorer 80s Reissue" {
		t.Errorf("Title = %q, want longest plain cell", got.Title)
	}
	if got.ImageURL != "https://cdn.x.com/explorer.jpg" {
		t.Errorf("ImageURL = %q, want the image-extension URL", got.ImageURL)
	}
	if got.ProductURL != "https://x.com/p/explorer-80s" {
		t.Errorf("ProductURL = %q, want the non-image URL", got.ProductURL)
	}
	if got.SKU != "explorer-80s" {
		t.Errorf("SKU = %q, want last path segment", got.SKU)
	}
	if got.Price != "1799.00" {
		t.Errorf("Price = %q, want 1799.00", got.Price)
	}
}

func TestNormalize_URLResolution(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"protocol-relative", "//cdn.x.com/sg.jpg", "https://cdn.x.com/sg.jpg"},
		{"root-relative", "/products/sg", "https://shop.example.com/products/sg"},
		{"absolute passes through", "https://x.com/p/sg", "https://x.com/p/sg"},
		{"bare image filename", "sg-standard.webp", "https://cdn.example.com/assets/sg-standard.webp"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeURL(tt.raw, testOpts()); got != tt.want {
				t.Errorf("normalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_Price(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"currency and thousands separator", "$2,999.00", "2999.00"},
		{"bare integer gains decimals", "2499", "2499.00"},
		{"already formatted", "19.99", "19.99"},
		{"euro symbol", "€1299.5", "1299.50"},
		{"unparseable keeps original", "from $999 to $1299", "from $999 to $1299"},
		{"no digits becomes empty", "call for price", ""},
		{"empty stays empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePrice(tt.raw); got != tt.want {
				t.Errorf("normalizePrice(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_SKUNeverEmpty(t *testing.T) {
	tests := []struct {
		name       string
		explicit   string
		productURL string
		title      string
		want       string
	}{
		{"explicit column wins", "SG-STD", "https://x.com/p/sg", "SG", "SG-STD"},
		{"url path segment", "", "https://x.com/guitars/explorer-80s", "Explorer", "explorer-80s"},
		{"trailing slash still resolves", "", "https://x.com/guitars/explorer-80s/", "Explorer", "explorer-80s"},
		{"falls back to title", "", "", "Firebird", "Firebird"},
		{"constant fallback as last resort", "", "", "", domain.FallbackSKU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveSKU(tt.explicit, tt.productURL, tt.title)
			if got != tt.want {
				t.Errorf("deriveSKU() = %q, want %q", got, tt.want)
			}
			if got == "" {
				t.Error("deriveSKU() must never return empty")
			}
		})
	}
}

func TestNormalize_SearchBlob(t *testing.T) {
	csv := "title,url,vendor\nSG Standard,https://x.com/p/sg-standard,Gibson"
	items := Normalize(Parse(csv, HeaderPresent), testOpts())

	if len(items) != 1 {
		t.Fatalf("Normalize() returned %d items, want 1", len(items))
	}
	blob := items[0].SearchBlob

	if blob != strings.ToLower(blob) {
		t.Error("SearchBlob must be lowercase")
	}
	for _, part := range []string{"sg standard", "gibson", "sg-standard", "https://x.com/p/sg-standard"} {
		if !strings.Contains(blob, part) {
			t.Errorf("SearchBlob %q missing %q", blob, part)
		}
	}
	if strings.Contains(blob, "  ") {
		t.Errorf("SearchBlob %q must be single-spaced", blob)
	}
}

func TestNormalize_DropsTitlelessRows(t *testing.T) {
	csv := "title,price\nSG Standard,1999\n,2499\nLes Paul,2499"
	items := Normalize(Parse(csv, HeaderPresent), testOpts())

	if len(items) != 2 {
		t.Fatalf("Normalize() returned %d items, want 2 (title-less row dropped)", len(items))
	}
	if items[0].Title != "SG Standard" || items[1].Title != "Les Paul" {
		t.Errorf("unexpected items after drop: %+v", items)
	}
}

func TestNormalize_MultipleDescriptorColumns(t *testing.T) {
	csv := "title,vendor,product-flag,tags\nSG Standard,Gibson,Sale,solid-body electric"
	items := Normalize(Parse(csv, HeaderPresent), testOpts())

	if len(items) != 1 {
		t.Fatalf("Normalize() returned %d items, want 1", len(items))
	}
	desc := items[0].Descriptor
	for _, part := range []string{"Gibson", "Sale", "solid-body electric"} {
		if !strings.Contains(desc, part) {
			t.Errorf("Descriptor %q missing %q", desc, part)
		}
	}
}
