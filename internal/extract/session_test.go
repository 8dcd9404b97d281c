package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"order item", "OrderItem"},
		{"Order Item", "OrderItem"},
		{"UserProfile", "UserProfile"},
		{"profile picture", "ProfilePicture"},
		{"addresses", "Address"},
		{"businesses", "Business"},
		{"  folder ", "Folder"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizeName(tc.in), "normalizeName(%q)", tc.in)
	}
}

func TestAddClassDeduplicatesCaseVariants(t *testing.T) {
	s := newSession()

	first := s.addClass("order item", "", 1)
	second := s.addClass("Order Item", "", 2)

	assert.Equal(t, "OrderItem", first)
	assert.Equal(t, first, second)
	assert.Len(t, s.classes, 1)
	assert.Equal(t, 1, s.list.Len())
}

func TestAddAttributeSkipsDuplicates(t *testing.T) {
	s := newSession()
	s.addClass("Invoice", "", 1)

	s.addAttribute("Invoice", "amount", 1, "-", "String")
	s.addAttribute("invoice", "Amount", 1, "-", "String")

	data, ok := s.class("Invoice")
	require.True(t, ok)
	require.Len(t, data.Attributes, 1)
	assert.Equal(t, "amount", data.Attributes[0].Name)
}

func TestAddMethodSkipsDuplicatesByName(t *testing.T) {
	s := newSession()
	s.addClass("User", "actor", 1)

	s.addMethod("User", "login", 1, nil, "+", "void")
	s.addMethod("User", "Login", 2, nil, "+", "void")

	data, _ := s.class("User")
	assert.Len(t, data.Methods, 1)
}

func TestAppendMethodParams(t *testing.T) {
	s := newSession()
	s.addClass("System", "actor", 1)
	s.addMethod("System", "alert", 1, nil, "+", "void")

	s.appendMethodParams("System", "alert", model.Param{Name: "user", Type: "Admin", Direction: "in"})

	data, _ := s.class("System")
	require.Len(t, data.Methods, 1)
	require.Len(t, data.Methods[0].Params, 1)
	assert.Equal(t, "Admin", data.Methods[0].Params[0].Type)
}

func TestAddRelationshipDeduplicates(t *testing.T) {
	s := newSession()

	s.addRelationship("Folder", "File", model.Aggregation, 1)
	s.addRelationship("folder", "file", model.Aggregation, 2)
	s.addRelationship("Folder", "File", model.Dependency, 2)

	var rels int
	for _, el := range s.list.Elements() {
		if el.Type == model.TypeRelationship {
			rels++
		}
	}
	assert.Equal(t, 2, rels)
}
