package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// Visitor input reaches layoutHTML only through html/template interpolation.
const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="margin:0;padding:0;background:#f4f6f8;font-family:Arial,Helvetica,sans-serif;color:#1f2933;">
  <table width="100%" cellpadding="0" cellspacing="0" style="max-width:640px;margin:24px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
    <tr><td style="background:#0b3d91;color:#ffffff;padding:24px;">
      <h1 style="margin:0;font-size:22px;">{{.Brand}}</h1>
      <p style="margin:4px 0 0;font-size:14px;">{{.Heading}}</p>
    </td></tr>
    <tr><td style="padding:24px;">
      <table width="100%" cellpadding="6" cellspacing="0" style="font-size:14px;">
      {{range .Rows}}{{if .Value}}<tr><td style="width:40%;color:#52606d;"><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
      {{end}}{{end}}</table>
      {{if .Notes}}<h3 style="font-size:16px;margin:24px 0 8px;">{{.NotesLabel}}</h3>
      <p style="white-space:pre-wrap;font-size:14px;line-height:1.5;">{{.Notes}}</p>{{end}}
    </td></tr>
    <tr><td style="background:#f0f4f8;padding:16px;font-size:12px;color:#7b8794;">
      Submitted {{.Submitted}} via the {{.Brand}} website. Reply to this email to reach {{.Name}} directly.
    </td></tr>
  </table>
</body>
</html>{{end}}`

const layoutText = `{{.Heading}}
{{range .Rows}}{{if .Value}}
{{.Label}}: {{.Value}}{{end}}{{end}}
{{if .Notes}}
{{.NotesLabel}}:
{{.Notes}}
{{end}}
Submitted {{.Submitted}} via the {{.Brand}} website.
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("email").Parse(layoutHTML))
	textTmpl = texttemplate.Must(texttemplate.New("email").Parse(layoutText))
)

type row struct {
	Label string
	Value string
}

type view struct {
	Brand      string
	Subject    string
	Heading    string
	Name       string
	Rows       []row
	NotesLabel string
	Notes      string
	Submitted  string
}

func render(v view) (text, html string, err error) {
	var h bytes.Buffer
	if err := htmlTmpl.ExecuteTemplate(&h, "layout", v); err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	var t bytes.Buffer
	if err := textTmpl.Execute(&t, v); err != nil {
		return "", "", fmt.Errorf("render text: %w", err)
	}
	return t.String(), h.String(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func priceRange(lo, hi string) string {
	switch {
	case lo != "" && hi != "":
		return lo + " - " + hi
	case lo != "":
		return "From " + lo
	case hi != "":
		return "Up to " + hi
	}
	return ""
}

// RenderSellInquiry renders the seller notification.
func RenderSellInquiry(brand string, in SellInquiry, now time.Time) (subject, text, html string, err error) {
	name := fullName(in.FirstName, in.LastName)
	subject = fmt.Sprintf("New Seller Inquiry: %s", in.PropertyAddress)
	text, html, err = render(view{
		Brand:   brand,
		Subject: subject,
		Heading: "New property seller inquiry",
		Name:    name,
		Rows: []row{
			{"Name", name},
			{"Email", in.Email},
			{"Phone", in.Phone},
			{"Property address", in.PropertyAddress},
			{"City", in.City},
			{"State", in.State},
			{"Zip code", in.ZipCode},
			{"Property type", in.PropertyType},
			{"Bedrooms", in.Bedrooms},
			{"Bathrooms", in.Bathrooms},
			{"Square feet", in.SquareFeet},
			{"Asking price", in.AskingPrice},
			{"Timeline", in.Timeline},
		},
		NotesLabel: "Property description",
		Notes:      in.Description,
		Submitted:  now.Format("Jan 2, 2006 3:04 PM MST"),
	})
	return subject, text, html, err
}

// RenderBuyInquiry renders the buyer notification.
func RenderBuyInquiry(brand string, in BuyInquiry, now time.Time) (subject, text, html string, err error) {
	name := fullName(in.FirstName, in.LastName)
	subject = fmt.Sprintf("New Buyer Inquiry: %s", name)
	text, html, err = render(view{
		Brand:   brand,
		Subject: subject,
		Heading: "New home buyer inquiry",
		Name:    name,
		Rows: []row{
			{"Name", name},
			{"Email", in.Email},
			{"Phone", in.Phone},
			{"Preferred location", in.PreferredLocation},
			{"Property type", in.PropertyType},
			{"Price range", priceRange(in.MinPrice, in.MaxPrice)},
			{"Bedrooms", in.Bedrooms},
			{"Bathrooms", in.Bathrooms},
			{"Timeline", in.Timeline},
			{"Pre-approved", yesNo(in.PreApproved)},
		},
		NotesLabel: "What they are looking for",
		Notes:      in.Description,
		Submitted:  now.Format("Jan 2, 2006 3:04 PM MST"),
	})
	return subject, text, html, err
}
