package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPrimaryImage(t *testing.T) {
	p := &Product{}
	assert.Nil(t, p.PrimaryImage())

	p.Images = []ImageMetadata{
		{URL: "a.jpg"},
		{URL: "b.jpg", IsPrimary: true},
	}
	img := p.PrimaryImage()
	require.NotNil(t, img)
	assert.Equal(t, "b.jpg", img.URL)

	// first image wins when no primary is flagged
	p.Images = []ImageMetadata{{URL: "a.jpg"}, {URL: "b.jpg"}}
	img = p.PrimaryImage()
	require.NotNil(t, img)
	assert.Equal(t, "a.jpg", img.URL)
}

func TestProductIsAvailable(t *testing.T) {
	assert.True(t, (&Product{Status: ProductActive}).IsAvailable())
	assert.False(t, (&Product{Status: ProductDraft}).IsAvailable())
	assert.False(t, (&Product{Status: ProductSold}).IsAvailable())
}
