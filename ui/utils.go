package ui

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"motofibra/catalog/internal/constants"
	reqctx "motofibra/catalog/internal/context"
	"motofibra/catalog/internal/logging"

	"github.com/shopspring/decimal"
)

//go:embed templates static
var assets embed.FS

var funcMap = template.FuncMap{
	// val reads a submitted or prefilled form value.
	"val": func(v url.Values, key string) string {
		return v.Get(key)
	},
	"num": formatFloat,
	"dec": func(d *decimal.Decimal) string {
		if d == nil {
			return "-"
		}
		return d.String()
	},
	"categoryLabel": func(c any) string {
		var key constants.Category
		switch v := c.(type) {
		case constants.Category:
			key = v
		case string:
			key = constants.Category(v)
		}
		if label, ok := constants.CategoryLabels[key]; ok {
			return label
		}
		return string(key)
	},
	"str": func(v any) string {
		switch s := v.(type) {
		case string:
			return s
		case constants.Brand:
			return string(s)
		case constants.Client:
			return string(s)
		case constants.Category:
			return string(s)
		}
		return ""
	},
}

// RenderTemplate renders a page inside the base layout. The page is executed
// into a buffer first so a failing template never sends a partial body.
func RenderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, data map[string]interface{}) error {
	t, err := template.New("base.html").Funcs(funcMap).ParseFS(assets,
		"templates/layouts/base.html",
		"templates/"+templateName,
	)
	if err != nil {
		logging.Error("Failed to load template", "template", templateName, "error", err.Error())
		http.Error(w, constants.MsgInternalError, http.StatusInternalServerError)
		return err
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	data["Theme"] = reqctx.GetTheme(r.Context())

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		logging.Error("Failed to render template", "template", templateName, "error", err.Error())
		http.Error(w, constants.MsgInternalError, http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
