package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAddIsIdempotent(t *testing.T) {
	l := NewList()

	first, added := l.Add(TypeClass, "Order", &ClassData{Name: "Order"}, 1)
	require.True(t, added)

	second, added := l.Add(TypeClass, "Order", &ClassData{Name: "Order"}, 2)
	assert.False(t, added)
	assert.Same(t, first, second)
	assert.Equal(t, 1, l.Len())
}

func TestListKeyIsCaseInsensitive(t *testing.T) {
	l := NewList()

	l.Add(TypeClass, "Order Item", &ClassData{Name: "Order Item"}, 1)
	_, added := l.Add(TypeClass, "order item", &ClassData{Name: "order item"}, 2)

	assert.False(t, added)
	assert.Equal(t, 1, l.Len())
}

func TestListSameKeyDifferentType(t *testing.T) {
	l := NewList()

	l.Add(TypeClass, "User", &ClassData{Name: "User"}, 1)
	_, added := l.Add(TypeUseCase, "User", &UseCaseData{Name: "User"}, 1)

	assert.True(t, added)
	assert.Equal(t, 2, l.Len())
}

func TestListPayloadIsSharedByReference(t *testing.T) {
	l := NewList()
	data := &ClassData{Name: "Invoice"}
	l.Add(TypeClass, "Invoice", data, 1)

	data.Attributes = append(data.Attributes, Attribute{Name: "amount", Visibility: "-", Type: "float"})

	el, ok := l.Get(TypeClass, "Invoice")
	require.True(t, ok)
	got := el.Data.(*ClassData)
	require.Len(t, got.Attributes, 1)
	assert.Equal(t, "amount", got.Attributes[0].Name)
}

func TestListRemoveKeepsOrder(t *testing.T) {
	l := NewList()
	l.Add(TypeArtifact, "a.jar", &ArtifactData{Name: "a.jar"}, 0)
	l.Add(TypeArtifact, "b.jar", &ArtifactData{Name: "b.jar"}, 0)
	l.Add(TypeArtifact, "c.jar", &ArtifactData{Name: "c.jar"}, 0)

	require.True(t, l.Remove(TypeArtifact, "b.jar"))

	els := l.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, "a.jar", els[0].Data.(*ArtifactData).Name)
	assert.Equal(t, "c.jar", els[1].Data.(*ArtifactData).Name)
}
