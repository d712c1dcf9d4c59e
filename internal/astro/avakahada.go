package astro

import (
	"fmt"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/model"
)

// Varna follows the moon sign's element: water signs Brahmin, fire
// Kshatriya, earth Vaishya, air Shudra.
var varnaBySign = [12]string{
	"Kshatriya", "Vaishya", "Shudra", "Brahmin", "Kshatriya", "Vaishya",
	"Shudra", "Brahmin", "Kshatriya", "Vaishya", "Shudra", "Brahmin",
}

var vashyaBySign = [12]string{
	"Chatushpada", "Chatushpada", "Manava", "Jalachara", "Vanachara",
	"Manava", "Manava", "Keeta", "Chatushpada", "Jalachara", "Manava",
	"Jalachara",
}

var yoniByNakshatra = [27]string{
	"Horse", "Elephant", "Sheep", "Serpent", "Serpent", "Dog", "Cat",
	"Sheep", "Cat", "Rat", "Rat", "Cow", "Buffalo", "Tiger", "Buffalo",
	"Tiger", "Deer", "Deer", "Dog", "Monkey", "Mongoose", "Monkey",
	"Lion", "Horse", "Lion", "Cow", "Elephant",
}

var ganaByNakshatra = [27]string{
	"Deva", "Manushya", "Rakshasa", "Manushya", "Deva", "Manushya",
	"Deva", "Deva", "Rakshasa", "Rakshasa", "Manushya", "Manushya",
	"Deva", "Rakshasa", "Deva", "Rakshasa", "Deva", "Rakshasa",
	"Rakshasa", "Manushya", "Manushya", "Deva", "Rakshasa", "Rakshasa",
	"Manushya", "Manushya", "Deva",
}

// Nadi zigzags Adi, Madhya, Antya and back across the mansions.
var nadiByNakshatra = [27]string{
	"Adi", "Madhya", "Antya", "Antya", "Madhya", "Adi",
	"Adi", "Madhya", "Antya", "Antya", "Madhya", "Adi",
	"Adi", "Madhya", "Antya", "Antya", "Madhya", "Adi",
	"Adi", "Madhya", "Antya", "Antya", "Madhya", "Adi",
	"Adi", "Madhya", "Antya",
}

// AvakahadaFor classifies the moon placement of a chart for match
// making.
func AvakahadaFor(chart *model.Chart) (model.Avakahada, error) {
	moon, ok := chart.Position(model.Moon)
	if !ok {
		return model.Avakahada{}, common.NewComputationInvariant("moon_position",
			fmt.Errorf("chart has no moon placement"))
	}

	nakIdx := moon.Nakshatra.Index - 1
	return model.Avakahada{
		Nakshatra: moon.Nakshatra,
		Varna:     varnaBySign[moon.Sign],
		Vashya:    vashyaBySign[moon.Sign],
		Yoni:      yoniByNakshatra[nakIdx],
		Gana:      ganaByNakshatra[nakIdx],
		Nadi:      nadiByNakshatra[nakIdx],
		Rashi:     moon.Sign,
		RashiLord: model.SignLord(moon.Sign),
	}, nil
}
