// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Project is one row of the projects table.
type Project struct {
	ID               string `json:"id"`
	Name             string `json:"projeto"`
	Status           string `json:"esta_ativo"`
	Description      string `json:"descricao,omitempty"`
	BeneficiaryCount int    `json:"quantidade_beneficiados"`
	Responsible      string `json:"principal_responsavel,omitempty"`
	CreatedAt        string `json:"data_cadastro,omitempty"`
	CreatedBy        string `json:"cadastrado_por,omitempty"`
}

// IsActive reports whether the status column reads "sim" in any case.
func (p Project) IsActive() bool {
	return IsActiveStatus(p.Status)
}

// IsActiveStatus reports whether a raw esta_ativo cell marks an active project.
func IsActiveStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), ActiveYes)
}

// ToggledStatus returns the status a toggle moves to: "Sim" becomes "Não",
// anything else becomes "Sim".
func ToggledStatus(status string) string {
	if strings.TrimSpace(status) == ActiveYes {
		return ActiveNo
	}
	return ActiveYes
}

// ProjectFromRecord maps a projects table row to a Project.
func ProjectFromRecord(r Record) Project {
	return Project{
		ID:               strings.TrimSpace(r.Text(ColProjectID)),
		Name:             strings.TrimSpace(r.Text(ColProjectName)),
		Status:           strings.TrimSpace(r.Text(ColProjectActive)),
		Description:      r.Text(ColProjectDescription),
		BeneficiaryCount: r.Get(ColProjectCount).Count(),
		Responsible:      r.Text(ColProjectResponsible),
		CreatedAt:        r.Text(ColProjectCreatedAt),
		CreatedBy:        r.Text(ColProjectCreatedBy),
	}
}

// NewProjectRequest carries the form fields of a new project.
type NewProjectRequest struct {
	Name        string `json:"projeto"`
	Status      string `json:"esta_ativo"`
	Description string `json:"descricao"`
	Responsible string `json:"principal_responsavel"`
}

// ToRecord renders the request as a new projects row. The beneficiary
// counter always starts at zero.
func (r NewProjectRequest) ToRecord(id string, at time.Time, by string) Record {
	return Record{
		ColProjectID:          String(id),
		ColProjectName:        text(r.Name),
		ColProjectActive:      text(r.Status),
		ColProjectDescription: text(r.Description),
		ColProjectCount:       Int(0),
		ColProjectResponsible: text(r.Responsible),
		ColProjectCreatedAt:   Date(at),
		ColProjectCreatedBy:   text(by),
	}
}
