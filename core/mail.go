package core

import (
	"bytes"
	"context"
	"embed"
	htmltmpl "html/template"
	"net/mail"
	texttmpl "text/template"
)

//go:embed templates/email/*.txt templates/email/*.gohtml
var emailTemplates embed.FS

type (
	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		AppName string
		Data    interface{}
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		Send(ctx context.Context, msg *EmailMessage) error
	}
)

func (m *EmailMessage) renderText(appName string) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	} else if m.TemplateName == "" {
		return nil
	}

	tmpl, err := texttmpl.ParseFS(emailTemplates, "templates/email/"+m.TemplateName+".txt")
	if err != nil {
		return nil // no text variant shipped for this template
	}
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, ContextData{AppName: appName, Data: m.TemplateData}); err != nil {
		return err
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) renderHTML(appName string) error {
	if m.TemplateName == "" {
		return nil
	}

	tmpl, err := htmltmpl.ParseFS(emailTemplates, "templates/email/"+m.TemplateName+".gohtml")
	if err != nil {
		return nil
	}
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, ContextData{AppName: appName, Data: m.TemplateData}); err != nil {
		return err
	}
	m.HTMLContent = buff.String()
	return nil
}

func (m *EmailMessage) Render(appName string) error {
	if err := m.renderText(appName); err != nil {
		return err
	}
	return m.renderHTML(appName)
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
