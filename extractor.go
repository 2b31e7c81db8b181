package bookvox

import (
	"context"
	"encoding/base64"
	"strings"
)

// Image is a captured page photograph.
type Image struct {
	Data     []byte
	MIMEType string

	// IsDoublePage marks a capture of two facing pages.
	IsDoublePage bool
}

// DataURL encodes the image as a base64 data URL.
func (img *Image) DataURL() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ParseDataURL decodes a base64 data URL such as the ones produced by a
// browser canvas ("data:image/jpeg;base64,...").
func ParseDataURL(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, Errorf(EINVALID, "image must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, Errorf(EINVALID, "malformed data URL")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, Errorf(EINVALID, "data URL must be base64 encoded")
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, Errorf(EINVALID, "unsupported media type %q", mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base64 image payload")
	}
	if len(data) == 0 {
		return nil, Errorf(EINVALID, "image required")
	}
	return &Image{Data: data, MIMEType: mime}, nil
}

// Extractor reads the text printed on a page photograph.
type Extractor interface {
	// Extract returns the page text in approximate reading order.
	// Double-page captures separate the two pages with PageBoundaryMarker
	// when the implementation can tell them apart.
	Extract(ctx context.Context, img *Image) (string, error)
}

// VisionPrompt returns the extraction instructions sent to vision models.
func VisionPrompt(isDoublePage bool) string {
	var sb strings.Builder
	sb.WriteString(`Tu es un expert en extraction de texte depuis des images de livres. Analyse cette image et extrais TOUT le texte visible.

Instructions importantes :
- Extrais le texte dans l'ordre de lecture naturel (de gauche à droite, de haut en bas)
- Préserve la structure des paragraphes
- Ignore les numéros de page
- Ne commente pas, ne décris pas l'image, donne UNIQUEMENT le texte extrait
`)
	if isDoublePage {
		sb.WriteString(`- L'image montre une double page : lis d'abord la page de gauche en entier, puis la page de droite
- Entre la page de gauche et la page de droite, écris une ligne contenant exactement ` + PageBoundaryMarker + `
- Ne JAMAIS alterner entre les deux pages ligne par ligne
`)
	}
	sb.WriteString("\nRetourne uniquement le texte extrait.")
	return sb.String()
}
