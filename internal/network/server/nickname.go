package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	titles = []string{
		"Admiral", "Archon", "Captain", "Chancellor", "Commander",
		"Consul", "Emperor", "Envoy", "Governor", "Marshal",
		"Navigator", "Overseer", "Prefect", "Regent", "Warden",
	}

	stars = []string{
		"Altair", "Antares", "Arcturus", "Betelgeuse", "Capella",
		"Deneb", "Fomalhaut", "Mira", "Polaris", "Procyon",
		"Rigel", "Sirius", "Spica", "Vega", "Zosma",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	return titles[rand.IntN(len(titles))] + " " + stars[rand.IntN(len(stars))]
}
