package icons

type ASCIIProvider struct{}

func (ASCIIProvider) Icons() Set {
	return Set{
		Play:    "▶",
		Pause:   "⏸",
		Volume:  "♪",
		Muted:   "x",
		Speed:   "»",
		Loading: "…",
		Error:   "!",
		Strip:   "▤",
	}
}
