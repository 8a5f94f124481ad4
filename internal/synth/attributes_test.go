package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAttributes(t *testing.T) {
	a := ExtractAttributes("What is the price of the blue hoodie in size M?")
	assert.Equal(t, "blue", a.Color)
	assert.Equal(t, "m", a.Size)
	assert.True(t, a.Price)
	assert.False(t, a.Availability)
	assert.False(t, a.Options)

	a = ExtractAttributes("Is the GREY one available in large?")
	assert.Equal(t, "gray", a.Color)
	assert.Equal(t, "l", a.Size)
	assert.True(t, a.Availability)

	a = ExtractAttributes("do you have it in XL")
	assert.Equal(t, "xl", a.Size)
}

func TestExtractAttributesIgnoresStrayLetters(t *testing.T) {
	a := ExtractAttributes("it's a gift, is it made of wool?")
	assert.Equal(t, "", a.Size)
	assert.Equal(t, "", a.Color)
	assert.True(t, a.Materials)
	assert.True(t, a.HasFlags())
}

func TestExtractAttributesFlags(t *testing.T) {
	a := ExtractAttributes("what colors does it come in, how heavy is it, any photos, ship to canada, guarantee?")
	assert.True(t, a.Options)
	assert.True(t, a.Weight)
	assert.True(t, a.Image)
	assert.True(t, a.Shipping)
	assert.True(t, a.Warranty)
	assert.False(t, a.Price)

	assert.False(t, ExtractAttributes("tell me about it").HasFlags())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "gray", NormalizeColor(" Grey "))
	assert.Equal(t, "blue", NormalizeColor("Blue"))
	assert.Equal(t, "s", NormalizeSize("Small"))
	assert.Equal(t, "m", NormalizeSize("medium"))
	assert.Equal(t, "xxl", NormalizeSize("XXL"))
}

func TestExtractAttributesWholeWordFlags(t *testing.T) {
	for _, msg := range []string{
		"what is your career page?",
		"be careful with this",
		"everything shipshape?",
		"the costume party",
		"an imagery question",
	} {
		assert.False(t, ExtractAttributes(msg).HasFlags(), msg)
	}
	a := ExtractAttributes("what are the shipping options and materials?")
	assert.True(t, a.Shipping)
	assert.True(t, a.Options)
	assert.True(t, a.Materials)
}

func TestExtractAttributesKeepsTypedWords(t *testing.T) {
	a := ExtractAttributes("Grey hoodie in Medium")
	assert.Equal(t, "gray", a.Color)
	assert.Equal(t, "grey", a.ColorWord)
	assert.Equal(t, "m", a.Size)
	assert.Equal(t, "medium", a.SizeWord)
}
