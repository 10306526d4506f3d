package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/campaign-scheduler/internal/model"
)

func (c *CatalogController) CreateRecipientList(w http.ResponseWriter, r *http.Request) {
	var body model.RecipientListInput
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	list, err := c.CatalogService.CreateRecipientList(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (c *CatalogController) ListRecipientLists(w http.ResponseWriter, r *http.Request) {
	lists, err := c.CatalogService.ListRecipientLists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (c *CatalogController) CreateRecipient(w http.ResponseWriter, r *http.Request) {
	var body model.RecipientInput
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	recipient, err := c.CatalogService.CreateRecipient(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipient)
}

func (c *CatalogController) ListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := c.CatalogService.ListRecipients(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipients)
}

func (c *CatalogController) RecipientsByCategory(w http.ResponseWriter, r *http.Request) {
	recipients, err := c.CatalogService.RecipientsByCategory(r.Context(), chi.URLParam(r, "recipient_category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipients)
}

func (c *CatalogController) CreateEmailTemplate(w http.ResponseWriter, r *http.Request) {
	var body model.EmailTemplateInput
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	tmpl, err := c.CatalogService.CreateEmailTemplate(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tmpl)
}

func (c *CatalogController) ListEmailTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := c.CatalogService.ListEmailTemplates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}
