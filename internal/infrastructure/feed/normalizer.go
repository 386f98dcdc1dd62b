package feed

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopvoice/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	absoluteURLRegex    = regexp.MustCompile(`^(?:https?:)?//\S+$`)
	imageHintRegex      = regexp.MustCompile(`(?i)(?:\.(?:png|jpe?g|gif|webp|avif|svg)(?:[?#]|$))|(?:/cdn/)|(?:image)`)
	imageFilenameRegex  = regexp.MustCompile(`(?i)^[\w.\-]+\.(?:png|jpe?g|gif|webp|avif|svg)$`)
	currencyNumberRegex = regexp.MustCompile(`^\s*[$€£¥]?\s*\d{1,3}(?:,\d{3})*(?:\.\d+)?\s*$|^\s*[$€£¥]?\s*\d+(?:\.\d+)?\s*$`)
	priceStripRegex     = regexp.MustCompile(`[$€£¥,\s]`)
	digitRegex          = regexp.MustCompile(`\d`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// Ordered alias tables per canonical field. The same logical column shows up
// under many header spellings depending on how the export was produced, so
// resolution is a single tagged lookup instead of per-field if-chains.
var (
	titleAliases      = []string{"title", "name", "full-unstyled-link", "model", "product"}
	urlAliases        = []string{"url", "href", "product_url", "full-unstyled-link href", "product-card-link", "link"}
	imageAliases      = []string{"image", "img", "photo", "thumbnail", "motion-reduce src", "linked-product__image src"}
	priceAliases      = []string{"price", "msrp", "price-item", "amount", "cost"}
	descriptorAliases = []string{"vendor", "vendor-name", "brand", "product-flag", "tags", "keywords"}
	skuAliases        = []string{"sku", "variant sku", "id", "product id", "item", "code", "barcode"}
)

// NormalizeOptions carries the site-specific settings needed to resolve
// relative URLs found in the feed.
type NormalizeOptions struct {
	// SiteOrigin resolves root-relative product links, e.g. "https://shop.example.com"
	SiteOrigin string
	// AssetPrefix resolves bare image filenames, e.g. "https://cdn.example.com/assets"
	AssetPrefix string
}

// Normalize converts parsed rows into canonical catalog items. Rows that
// yield no title after every fallback are dropped; a title-less entry is
// neither searchable nor presentable.
func Normalize(rows []RawRow, opts NormalizeOptions) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(rows))
	for _, row := range rows {
		item, ok := normalizeRow(row, opts)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func normalizeRow(row RawRow, opts NormalizeOptions) (domain.CatalogItem, bool) {
	title := resolveField(row, titleAliases)
	productURL := resolveField(row, urlAliases)
	imageURL := resolveField(row, imageAliases)
	price := resolveField(row, priceAliases)
	sku := resolveField(row, skuAliases)
	descriptor := resolveDescriptor(row)

	// Header lookups exhausted; fall back to positional heuristics on the
	// raw cells (headerless exports, or exports with unrecognized columns).
	if imageURL == "" {
		imageURL = firstImageCell(row.Cells)
	}
	if productURL == "" {
		productURL = firstURLCell(row.Cells, imageURL)
	}
	if title == "" {
		title = longestPlainCell(row.Cells)
	}
	if price == "" {
		price = firstPriceCell(row.Cells)
	}

	if title == "" {
		return domain.CatalogItem{}, false
	}

	productURL = normalizeURL(productURL, opts)
	imageURL = normalizeURL(imageURL, opts)
	price = normalizePrice(price)
	sku = deriveSKU(sku, productURL, title)

	item := domain.CatalogItem{
		Title:      title,
		ProductURL: productURL,
		ImageURL:   imageURL,
		Price:      price,
		SKU:        sku,
		Descriptor: descriptor,
	}
	item.SearchBlob = buildSearchBlob(item)
	return item, true
}

// resolveField returns the first alias present in the row with a non-empty
// trimmed value.
func resolveField(row RawRow, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(row.Field(alias)); v != "" {
			return v
		}
	}
	return ""
}

// resolveDescriptor gathers every descriptor-family column present on the
// row (vendor, flags, tags) into one secondary searchable string.
func resolveDescriptor(row RawRow) string {
	var parts []string
	for _, alias := range descriptorAliases {
		if v := strings.TrimSpace(row.Field(alias)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func looksLikeURL(s string) bool {
	return absoluteURLRegex.MatchString(s)
}

func looksLikePrice(s string) bool {
	return currencyNumberRegex.MatchString(s)
}

// firstImageCell returns the first absolute-URL cell carrying an image
// extension or an image/cdn hint.
func firstImageCell(cells []string) string {
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if looksLikeURL(cell) && imageHintRegex.MatchString(cell) {
			return cell
		}
	}
	return ""
}

// firstURLCell returns the first absolute-URL cell other than the image.
func firstURLCell(cells []string, imageURL string) string {
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell != "" && cell != imageURL && looksLikeURL(cell) {
			return cell
		}
	}
	return ""
}

// longestPlainCell assumes the title is the longest cell that is neither
// URL-shaped nor price-shaped.
func longestPlainCell(cells []string) string {
	best := ""
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" || looksLikeURL(cell) || looksLikePrice(cell) {
			continue
		}
		if len(cell) > len(best) {
			best = cell
		}
	}
	return best
}

func firstPriceCell(cells []string) string {
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell != "" && looksLikePrice(cell) {
			return cell
		}
	}
	return ""
}

// normalizeURL resolves protocol-relative, root-relative, and bare image
// filename forms to absolute URLs. Already-absolute URLs pass through.
func normalizeURL(raw string, opts NormalizeOptions) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(opts.SiteOrigin, "/") + raw
	case strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://"):
		return raw
	case imageFilenameRegex.MatchString(raw):
		if opts.AssetPrefix == "" {
			return raw
		}
		return strings.TrimRight(opts.AssetPrefix, "/") + "/" + raw
	default:
		return raw
	}
}

// normalizePrice strips currency symbols and thousands separators. A value
// that parses as a finite number is formatted with exactly two decimals;
// otherwise the original trimmed text is kept; a value with no digits at
// all becomes empty.
func normalizePrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !digitRegex.MatchString(raw) {
		return ""
	}
	stripped := priceStripRegex.ReplaceAllString(raw, "")
	if f, err := strconv.ParseFloat(stripped, 64); err == nil {
		return fmt.Sprintf("%.2f", f)
	}
	return raw
}

// deriveSKU resolves a stable identifier: explicit column, then the last
// non-empty path segment of the product URL, then the title, then the
// constant fallback. Never empty.
func deriveSKU(explicit, productURL, title string) string {
	if explicit != "" {
		return explicit
	}
	if seg := lastPathSegment(productURL); seg != "" {
		return seg
	}
	if title != "" {
		return title
	}
	return domain.FallbackSKU
}

func lastPathSegment(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(segments[i]); seg != "" {
			return seg
		}
	}
	return ""
}

// buildSearchBlob precomputes the lowercase text every query is scored
// against, so ranking never re-derives it per query.
func buildSearchBlob(item domain.CatalogItem) string {
	blob := strings.ToLower(item.Title + " " + item.Descriptor + " " + item.SKU + " " + item.ProductURL)
	blob = multipleSpacesRegex.ReplaceAllString(blob, " ")
	return strings.TrimSpace(blob)
}
