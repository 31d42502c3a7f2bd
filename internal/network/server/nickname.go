package server

import (
	"math/rand/v2"
)

// Nickname word lists, card-table flavored.
var (
	adjectives = []string{
		"Bold", "Clever", "Lucky", "Quiet", "Swift",
		"Sly", "Patient", "Daring", "Steady", "Sharp",
		"Cunning", "Gentle", "Fierce", "Merry", "Stubborn",
		"Wily", "Calm", "Reckless", "Shrewd", "Proud",
	}

	nouns = []string{
		"Fox", "Owl", "Badger", "Heron", "Lynx",
		"Otter", "Raven", "Stag", "Wolf", "Hare",
		"Falcon", "Marten", "Boar", "Swan", "Weasel",
		"Magpie", "Stoat", "Crane", "Hedgehog", "Squirrel",
	}
)

// GenerateNickname draws a random adjective-noun pair.
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun
}
