// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_Matches(t *testing.T) {
	r := Record{ColEmail: String("  Ana@Example.org "), ColProjectID: String(" abc ")}

	assert.True(t, ByEmail("ana@example.org").Matches(r))
	assert.True(t, ByEmail(" ANA@EXAMPLE.ORG").Matches(r))
	assert.True(t, ByID("abc").Matches(r))
	assert.False(t, ByID("ABC").Matches(r), "ids are case-sensitive")
	assert.False(t, ByProjectName("abc").Matches(r))
}

func TestSnapshot_IndexOf_FirstMatch(t *testing.T) {
	s := Snapshot{Records: []Record{
		{ColProjectName: String("Horta")},
		{ColProjectName: String("Oficina")},
		{ColProjectName: String("Oficina")},
	}}

	assert.Equal(t, 1, s.IndexOf(ByProjectName("Oficina")))
	assert.Equal(t, -1, s.IndexOf(ByProjectName("Nada")))
}

func TestSnapshot_Clone_IsDeep(t *testing.T) {
	orig := Snapshot{
		Table:   TableProjects,
		Columns: []string{"a"},
		Records: []Record{{"a": String("1")}},
	}

	c := orig.Clone()
	c.Records[0]["a"] = String("2")
	c.Columns[0] = "z"

	assert.Equal(t, "1", orig.Records[0].Text("a"))
	assert.Equal(t, "a", orig.Columns[0])
}

func TestSnapshot_Header(t *testing.T) {
	s := Snapshot{
		Columns: []string{"b", "a"},
		Records: []Record{{"a": String("1"), "d": String("x")}, {"c": String("y")}},
	}

	assert.Equal(t, []string{"b", "a", "c", "d"}, s.Header())
}

func TestRecord_With(t *testing.T) {
	r := Record{"a": String("1")}
	r2 := r.With("a", String("2"))

	assert.Equal(t, "1", r.Text("a"))
	assert.Equal(t, "2", r2.Text("a"))

	var empty Record
	assert.Equal(t, "v", empty.With("k", String("v")).Text("k"))
}

func TestProject_Toggle(t *testing.T) {
	assert.Equal(t, ActiveNo, ToggledStatus("Sim"))
	assert.Equal(t, ActiveYes, ToggledStatus("Não"))
	assert.Equal(t, ActiveYes, ToggledStatus(""))
	assert.True(t, IsActiveStatus(" SIM "))
	assert.False(t, IsActiveStatus("Não"))
}

func TestSplitProjects(t *testing.T) {
	assert.Equal(t, []string{"Horta", "Oficina"}, SplitProjects("Horta, Oficina"))
	assert.Nil(t, SplitProjects(" "))
}

func TestProjectFromRecord_LenientCount(t *testing.T) {
	p := ProjectFromRecord(Record{
		ColProjectID:    String("id-1"),
		ColProjectName:  String(" Horta "),
		ColProjectCount: String("muitos"),
	})

	assert.Equal(t, "Horta", p.Name)
	assert.Zero(t, p.BeneficiaryCount)
}
