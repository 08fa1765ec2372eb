// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CategoryCount is one bar of a distribution chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardSummary aggregates the beneficiaries and projects tables.
type DashboardSummary struct {
	// TotalBeneficiaries is the number of registered people.
	TotalBeneficiaries int `json:"total_beneficiarios"`

	// AveragePerCapitaIncome is nil when no row has a numeric income.
	AveragePerCapitaIncome *float64 `json:"renda_per_capita_media"`

	// PeopleServed is the sum of family members over all rows.
	PeopleServed int `json:"pessoas_beneficiadas"`

	// DistinctProjects counts distinct project names referenced by rows.
	DistinctProjects int `json:"projetos_distintos"`

	// ActiveProjects counts projects flagged active.
	ActiveProjects int `json:"projetos_ativos"`

	BySex          []CategoryCount `json:"por_sexo"`
	ByGender       []CategoryCount `json:"por_genero"`
	ByAgeBracket   []CategoryCount `json:"por_faixa_etaria"`
	ByNeighborhood []CategoryCount `json:"por_bairro"`
	ByHousingType  []CategoryCount `json:"por_tipo_residencia"`
	ByRace         []CategoryCount `json:"por_cor_raca_etnia"`
	ByProject      []CategoryCount `json:"por_projeto"`
	WaterAccess    []CategoryCount `json:"acesso_agua"`
	SewageAccess   []CategoryCount `json:"acesso_esgoto"`
	PowerAccess    []CategoryCount `json:"acesso_energia"`
	LeprosyHistory []CategoryCount `json:"historico_hanseniase"`
}

// RegistrationResult reports the outcome of a beneficiary registration.
// The row is stored even when Warnings is non-empty.
type RegistrationResult struct {
	Name            string   `json:"nome_completo"`
	ProjectsCounted int      `json:"projetos_atualizados"`
	Warnings        []string `json:"avisos,omitempty"`
}
