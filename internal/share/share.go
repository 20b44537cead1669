// Package share builds social sharing links for catalog products.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/disenos/catalogo/internal/models"
)

// Platform identifies a supported sharing target.
type Platform string

const (
	WhatsApp Platform = "whatsapp"
	Facebook Platform = "facebook"
	Telegram Platform = "telegram"
	Email    Platform = "email"
)

// ErrUnknownPlatform is returned for a platform outside the supported set.
var ErrUnknownPlatform = fmt.Errorf("unknown share platform")

// ProductURL builds the public detail link for a product.
func ProductURL(baseURL string, p *models.Product) string {
	return baseURL + "/?product=" + url.QueryEscape(p.ID)
}

// ProductLink builds the platform-specific share URL for a single product.
// The text templates match what the storefront has always sent.
func ProductLink(baseURL string, p *models.Product, platform Platform) (string, error) {
	productURL := ProductURL(baseURL, p)
	text := fmt.Sprintf("¡Mira este increíble diseño! %s - %s", p.Name, p.Description)

	switch platform {
	case WhatsApp:
		return "https://wa.me/?text=" + url.QueryEscape(text+" "+productURL), nil
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(productURL), nil
	case Telegram:
		return "https://t.me/share/url?url=" + url.QueryEscape(productURL) + "&text=" + url.QueryEscape(text), nil
	case Email:
		return "mailto:?subject=" + url.QueryEscape("Mira este diseño") +
			"&body=" + url.QueryEscape(text+"\n\nVer diseño: "+productURL), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
}

// CatalogLink builds the platform-specific share URL for a selection of
// products, pointing at the storefront itself with a bulleted name list.
func CatalogLink(baseURL string, products []models.Product, platform Platform) (string, error) {
	names := make([]string, len(products))
	for i := range products {
		names[i] = "• " + products[i].Name
	}
	text := fmt.Sprintf("¡Mira esta selección de %d diseños increíbles!\n\n%s",
		len(products), strings.Join(names, "\n"))

	switch platform {
	case WhatsApp:
		return "https://wa.me/?text=" + url.QueryEscape(text+"\n\nVer catálogo: "+baseURL), nil
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(baseURL), nil
	case Telegram:
		return "https://t.me/share/url?url=" + url.QueryEscape(baseURL) + "&text=" + url.QueryEscape(text), nil
	case Email:
		return "mailto:?subject=" + url.QueryEscape("Mira este diseño") +
			"&body=" + url.QueryEscape(text+"\n\nVer catálogo completo: "+baseURL), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
}
