package report

import (
	"html"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const printCSS = `body{font-family:Georgia,'Times New Roman',serif;color:#1c1917;line-height:1.5;margin:0;padding:0 0.5rem;}
h1{font-size:1.6rem;border-bottom:2px solid #1d4ed8;padding-bottom:0.3rem;}
h2{font-size:1.2rem;color:#1d4ed8;margin-top:1.6rem;break-after:avoid;page-break-after:avoid;}
h3{font-size:1rem;break-after:avoid;page-break-after:avoid;}
table{border-collapse:collapse;width:100%;font-size:0.85rem;}
th,td{border:1px solid #a8a29e;padding:0.3rem 0.45rem;text-align:left;vertical-align:top;}
p,li{orphans:3;widows:3;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}`

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts report markdown into a standalone printable page. Raw HTML
// in the markdown is not passed through.
func HTML(md string) (string, error) {
	var content strings.Builder
	if err := markdown.Convert([]byte(md), &content); err != nil {
		return "", goerr.Wrap(err, "markdown convert")
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(Title) + "</title>" +
		"<style>" + printCSS + "</style></head><body>" + content.String() + "</body></html>", nil
}

// Fragment converts markdown to an HTML fragment for embedding in a page.
func Fragment(md string) (string, error) {
	var out strings.Builder
	if err := markdown.Convert([]byte(md), &out); err != nil {
		return "", goerr.Wrap(err, "markdown convert")
	}
	return out.String(), nil
}
