package frontend

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-plantilla/pkg/model"
)

var (
	infoPolicyOnce sync.Once
	infoPolicy     *bluemonday.Policy
)

// SanitizeInfo strips unsafe markup from every present field of a downloaded
// info envelope. Absent fields stay absent.
func SanitizeInfo(info model.DownloadedInfo) model.DownloadedInfo {
	return model.DownloadedInfo{
		Mensaje: sanitizeValue(info.Mensaje),
		Autor:   sanitizeValue(info.Autor),
		Email:   sanitizeValue(info.Email),
		Fecha:   sanitizeValue(info.Fecha),
	}
}

// SanitizeHTML applies the info policy to a markup fragment.
func SanitizeHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return infoSanitizer().Sanitize(raw)
}

func sanitizeValue(v model.Value) model.Value {
	if !v.Present() {
		return v
	}
	return model.Text(SanitizeHTML(v.String()))
}

func infoSanitizer() *bluemonday.Policy {
	infoPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "br", "p", "span", "code")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		infoPolicy = policy
	})
	return infoPolicy
}
