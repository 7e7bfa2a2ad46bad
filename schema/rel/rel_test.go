package rel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relink/schema/rel"
)

// TestManyToOne tests the rel.ManyToOne builder with various configurations.
func TestManyToOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *rel.Descriptor
		validate func(t *testing.T, desc *rel.Descriptor)
	}{
		{
			name: "basic_reference",
			build: func() *rel.Descriptor {
				return rel.ManyToOne("customer", "Customer").Descriptor()
			},
			validate: func(t *testing.T, desc *rel.Descriptor) {
				assert.Equal(t, "customer", desc.Name)
				assert.Equal(t, "Customer", desc.Type)
				assert.Equal(t, rel.M2O, desc.Rel)
				assert.False(t, desc.IsInverse())
				assert.False(t, desc.IsCollection())
				assert.False(t, desc.Required)
				assert.Empty(t, desc.Field)
				assert.NoError(t, desc.Err)
			},
		},
		{
			name: "required_with_field",
			build: func() *rel.Descriptor {
				return rel.ManyToOne("customer", "Customer").
					Required().
					Field(rel.DefaultField("customer")).
					Descriptor()
			},
			validate: func(t *testing.T, desc *rel.Descriptor) {
				assert.True(t, desc.Required)
				assert.Equal(t, "customerId", desc.Field)
				assert.NoError(t, desc.Err)
			},
		},
		{
			name: "ref_is_invalid",
			build: func() *rel.Descriptor {
				return rel.ManyToOne("customer", "Customer").Ref("orders").Descriptor()
			},
			validate: func(t *testing.T, desc *rel.Descriptor) {
				require.Error(t, desc.Err)
				assert.Contains(t, desc.Err.Error(), "Ref on many-to-one")
			},
		},
		{
			name: "comment",
			build: func() *rel.Descriptor {
				return rel.ManyToOne("customer", "Customer").Comment("order owner").Descriptor()
			},
			validate: func(t *testing.T, desc *rel.Descriptor) {
				assert.Equal(t, "order owner", desc.Comment)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

// TestOneToOne tests owner and inverse one-to-one ends.
func TestOneToOne(t *testing.T) {
	t.Parallel()

	owner := rel.OneToOne("profile", "Profile").Field("profileId").Descriptor()
	require.NoError(t, owner.Err)
	assert.Equal(t, rel.O2O, owner.Rel)
	assert.False(t, owner.IsInverse())
	assert.Equal(t, "profileId", owner.Field)

	inverse := rel.OneToOne("user", "User").Ref("profile").Descriptor()
	require.NoError(t, inverse.Err)
	assert.True(t, inverse.IsInverse())
	assert.Equal(t, "profile", inverse.RefName)

	// Foreign keys belong on the owning side only.
	invalid := rel.OneToOne("user", "User").Ref("profile").Field("userId").Descriptor()
	require.Error(t, invalid.Err)
	invalid = rel.OneToOne("user", "User").Field("userId").Ref("profile").Descriptor()
	require.Error(t, invalid.Err)
}

// TestCollections tests the collection builders.
func TestCollections(t *testing.T) {
	t.Parallel()

	orders := rel.OneToMany("orders", "Order").Ref("customer").Descriptor()
	require.NoError(t, orders.Err)
	assert.Equal(t, rel.O2M, orders.Rel)
	assert.True(t, orders.IsCollection())
	assert.True(t, orders.IsInverse())
	assert.Equal(t, "customer", orders.RefName)

	tags := rel.ManyToMany("tags", "Tag").Descriptor()
	require.NoError(t, tags.Err)
	assert.Equal(t, rel.M2M, tags.Rel)
	assert.False(t, tags.IsInverse())

	tagged := rel.ManyToMany("products", "Product").Ref("tags").Descriptor()
	require.NoError(t, tagged.Err)
	assert.True(t, tagged.IsInverse())
}

// TestParse tests cardinality parsing of both spellings.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want rel.Rel
	}{
		{"M2O", rel.M2O},
		{"manyToOne", rel.M2O},
		{"O2M", rel.O2M},
		{"oneToMany", rel.O2M},
		{"O2O", rel.O2O},
		{"oneToOne", rel.O2O},
		{"M2M", rel.M2M},
		{"manyToMany", rel.M2M},
	}
	for _, tt := range tests {
		got, err := rel.Parse(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}

	_, err := rel.Parse("belongsTo")
	require.Error(t, err)
}

func mustParse(t *testing.T, s string) rel.Rel {
	t.Helper()
	r, err := rel.Parse(s)
	require.NoError(t, err)
	return r
}
