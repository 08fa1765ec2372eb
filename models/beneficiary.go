// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
)

// Columns of the beneficiaries table.
const (
	ColFullName             = "nome_completo"
	ColCPF                  = "cpf"
	ColRG                   = "rg"
	ColBirthDate            = "data_nascimento"
	ColSex                  = "sexo"
	ColGender               = "genero"
	ColRace                 = "cor_raca_etnia"
	ColAddress              = "endereco"
	ColNeighborhood         = "bairro"
	ColBeneficiaryPhone     = "telefone"
	ColYearsOfResidence     = "anos_residencia"
	ColMaritalStatus        = "estado_civil"
	ColChildren             = "numero_filhos"
	ColFamilyMembers        = "numero_membros_familia"
	ColHouseholdHead        = "responsavel_familiar"
	ColGrossIncome          = "renda_bruta_total"
	ColPerCapitaIncome      = "renda_per_capita"
	ColHousingType          = "tipo_residencia"
	ColWaterAccess          = "acesso_agua"
	ColSewageAccess         = "acesso_esgoto"
	ColPowerAccess          = "acesso_energia"
	ColLeprosyStatus        = "situacao_hanseniase"
	ColLeprosyTreatmentYear = "ano_tratamento_hanseniase"
	ColProjects             = "projeto_acao"
	ColHadLeprosy           = "ja_teve_hanseniase"
	ColLeprosyDiagnosisYear = "ano_diagnostico_hanseniase"
	ColOperationalClass     = "classificacao_operacional"
	ColClinicalForm         = "forma_clinica"
	ColLesionCount          = "numero_lesoes"
	ColAffectedNerves       = "nervos_afetados"
	ColDisabilityGrade      = "grau_incapacidade"
	ColFilledBy             = "responsavel_preenchimento"
	ColInterviewer          = "responsavel_entrevista"
)

// BeneficiaryColumns is the header of the beneficiaries table in form order.
var BeneficiaryColumns = []string{
	ColFullName, ColCPF, ColRG, ColBirthDate, ColSex, ColGender, ColRace,
	ColAddress, ColNeighborhood, ColBeneficiaryPhone, ColYearsOfResidence,
	ColMaritalStatus, ColChildren, ColFamilyMembers, ColHouseholdHead,
	ColGrossIncome, ColPerCapitaIncome, ColHousingType, ColWaterAccess,
	ColSewageAccess, ColPowerAccess, ColLeprosyStatus, ColLeprosyTreatmentYear,
	ColProjects, ColHadLeprosy, ColLeprosyDiagnosisYear, ColOperationalClass,
	ColClinicalForm, ColLesionCount, ColAffectedNerves, ColDisabilityGrade,
	ColFilledBy, ColInterviewer,
}

// ProjectSeparator joins the project names selected for one beneficiary.
const ProjectSeparator = ", "

// Beneficiary is one person registered through the intake form.
type Beneficiary struct {
	// Personal data.
	FullName  string `json:"nome_completo"`
	CPF       string `json:"cpf"`
	RG        string `json:"rg,omitempty"`
	BirthDate string `json:"data_nascimento"`
	Sex       string `json:"sexo"`
	Gender    string `json:"genero,omitempty"`
	Race      string `json:"cor_raca_etnia,omitempty"`
	Phone     string `json:"telefone,omitempty"`

	// Housing.
	Address          string `json:"endereco"`
	Neighborhood     string `json:"bairro"`
	YearsOfResidence int    `json:"anos_residencia"`
	HousingType      string `json:"tipo_residencia,omitempty"`
	WaterAccess      string `json:"acesso_agua,omitempty"`
	SewageAccess     string `json:"acesso_esgoto,omitempty"`
	PowerAccess      string `json:"acesso_energia,omitempty"`

	// Family and income.
	MaritalStatus   string  `json:"estado_civil,omitempty"`
	Children        int     `json:"numero_filhos"`
	FamilyMembers   int     `json:"numero_membros_familia"`
	HouseholdHead   string  `json:"responsavel_familiar,omitempty"`
	GrossIncome     float64 `json:"renda_bruta_total"`
	PerCapitaIncome float64 `json:"renda_per_capita"`

	// Health.
	LeprosyStatus        string `json:"situacao_hanseniase,omitempty"`
	LeprosyTreatmentYear *int   `json:"ano_tratamento_hanseniase,omitempty"`
	HadLeprosy           string `json:"ja_teve_hanseniase,omitempty"`
	LeprosyDiagnosisYear *int   `json:"ano_diagnostico_hanseniase,omitempty"`
	OperationalClass     string `json:"classificacao_operacional,omitempty"`
	ClinicalForm         string `json:"forma_clinica,omitempty"`
	LesionCount          string `json:"numero_lesoes,omitempty"`
	AffectedNerves       string `json:"nervos_afetados,omitempty"`
	DisabilityGrade      string `json:"grau_incapacidade,omitempty"`

	// Projects holds the names of the projects the person joins.
	Projects []string `json:"projeto_acao,omitempty"`

	FilledBy    string `json:"responsavel_preenchimento"`
	Interviewer string `json:"responsavel_entrevista,omitempty"`
}

func optionalYear(y *int) Value {
	if y == nil {
		return Empty()
	}
	return Int(*y)
}

func text(s string) Value {
	return ValueOf(strings.TrimSpace(s))
}

// ToRecord renders the beneficiary as a row of the beneficiaries table.
func (b Beneficiary) ToRecord() Record {
	return Record{
		ColFullName:             text(b.FullName),
		ColCPF:                  text(b.CPF),
		ColRG:                   text(b.RG),
		ColBirthDate:            text(b.BirthDate),
		ColSex:                  text(b.Sex),
		ColGender:               text(b.Gender),
		ColRace:                 text(b.Race),
		ColAddress:              text(b.Address),
		ColNeighborhood:         text(b.Neighborhood),
		ColBeneficiaryPhone:     text(b.Phone),
		ColYearsOfResidence:     Int(b.YearsOfResidence),
		ColMaritalStatus:        text(b.MaritalStatus),
		ColChildren:             Int(b.Children),
		ColFamilyMembers:        Int(b.FamilyMembers),
		ColHouseholdHead:        text(b.HouseholdHead),
		ColGrossIncome:          Number(b.GrossIncome),
		ColPerCapitaIncome:      Number(b.PerCapitaIncome),
		ColHousingType:          text(b.HousingType),
		ColWaterAccess:          text(b.WaterAccess),
		ColSewageAccess:         text(b.SewageAccess),
		ColPowerAccess:          text(b.PowerAccess),
		ColLeprosyStatus:        text(b.LeprosyStatus),
		ColLeprosyTreatmentYear: optionalYear(b.LeprosyTreatmentYear),
		ColProjects:             text(strings.Join(b.Projects, ProjectSeparator)),
		ColHadLeprosy:           text(b.HadLeprosy),
		ColLeprosyDiagnosisYear: optionalYear(b.LeprosyDiagnosisYear),
		ColOperationalClass:     text(b.OperationalClass),
		ColClinicalForm:         text(b.ClinicalForm),
		ColLesionCount:          text(b.LesionCount),
		ColAffectedNerves:       text(b.AffectedNerves),
		ColDisabilityGrade:      text(b.DisabilityGrade),
		ColFilledBy:             text(b.FilledBy),
		ColInterviewer:          text(b.Interviewer),
	}
}

// SplitProjects parses the joined project list stored in a beneficiary row.
func SplitProjects(joined string) []string {
	var out []string
	for _, p := range strings.Split(joined, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
