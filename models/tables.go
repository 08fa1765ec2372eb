package models

// Table names as they appear in the backing spreadsheet.
const (
	TableAuth          = "Autenticação"
	TableProjects      = "Projetos"
	TableBeneficiaries = "Dados"
)

// Columns of the authorization table.
const (
	ColUserName         = "nome"
	ColEmail            = "e-mail"
	ColPhone            = "telefone"
	ColUserRegisteredAt = "data cadastro"
	ColUserRegisteredBy = "cadastrado por"
)

// Columns of the projects table.
const (
	ColProjectID          = "id"
	ColProjectName        = "projeto"
	ColProjectActive      = "esta_ativo"
	ColProjectDescription = "descricao"
	ColProjectCount       = "quantidade_beneficiados"
	ColProjectResponsible = "principal_responsavel"
	ColProjectCreatedAt   = "data_cadastro"
	ColProjectCreatedBy   = "cadastrado_por"
)

// Values of the project active flag.
const (
	ActiveYes = "Sim"
	ActiveNo  = "Não"
)

// TableColumns lists the canonical header of every known table. It seeds the
// header when a table is written for the first time.
var TableColumns = map[string][]string{
	TableAuth: {
		ColUserName, ColEmail, ColPhone, ColUserRegisteredAt, ColUserRegisteredBy,
	},
	TableProjects: {
		ColProjectID, ColProjectName, ColProjectActive, ColProjectDescription,
		ColProjectCount, ColProjectResponsible, ColProjectCreatedAt, ColProjectCreatedBy,
	},
	TableBeneficiaries: BeneficiaryColumns,
}
