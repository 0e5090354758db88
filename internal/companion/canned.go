package companion

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/JaimeStill/moodai/internal/mood"
)

var cannedReplies = map[mood.Label][]string{
	mood.Motivated: {
		"That's wonderful to hear! Your positive energy is inspiring. Would you like some suggestions to maintain this momentum?",
		"I'm so glad you're feeling motivated! This is a great time to set new goals or tackle challenging tasks.",
		"Your motivation is fantastic! Keep channeling this energy into things that matter to you.",
	},
	mood.Neutral: {
		"Thank you for checking in. I'm here whenever you need support. How can I help you today?",
		"I appreciate you sharing how you're feeling. Is there anything specific you'd like to talk about?",
		"I'm here to listen. Sometimes neutral moments are opportunities for reflection. What's on your mind?",
	},
	mood.Stressed: {
		"I hear that you're feeling stressed. That's completely valid, and you're not alone. Would you like to try a quick breathing exercise?",
		"Stress can be overwhelming. Remember, it's okay to take breaks. Would some relaxation techniques help?",
		"I understand you're under pressure. Let's explore some ways to help you manage this stress.",
	},
	mood.BurntOut: {
		"I'm sorry you're experiencing burnout. This is serious, and your wellbeing matters. Would you like me to connect you with a human wellness consultant for 1-on-1 support?",
		"Burnout is exhausting. Please know it's okay to rest and seek help. Have you considered taking a break or talking to someone?",
		"What you're feeling is valid. Burnout requires care and support. Would professional guidance be helpful?",
	},
	mood.Anxious: {
		"I understand anxiety can feel overwhelming. You're safe here, and we can work through this together. Would grounding exercises help?",
		"Anxiety is tough, but you're taking a positive step by reaching out. Let's explore some calming strategies together.",
		"I hear your concerns. Anxiety can be managed with the right support. Would you like some immediate relief techniques?",
	},
}

// Replies returns the canned replies for l, falling back to the Neutral set.
func Replies(l mood.Label) []string {
	if r, ok := cannedReplies[l]; ok {
		return r
	}
	return cannedReplies[mood.Neutral]
}

// Chooser picks an index in [0, n).
type Chooser interface {
	Choose(n int) int
}

type randChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewChooser returns a Chooser seeded with seed. Equal seeds yield equal sequences.
func NewChooser(seed uint64) Chooser {
	return &randChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// RandomChooser returns a Chooser backed by the runtime's random source.
func RandomChooser() Chooser {
	return NewChooser(rand.Uint64())
}

func (c *randChooser) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}

// Canned composes replies from a fixed per-label set.
type Canned struct {
	chooser Chooser
}

// NewCanned creates a Canned composer. A nil chooser uses RandomChooser.
func NewCanned(chooser Chooser) *Canned {
	if chooser == nil {
		chooser = RandomChooser()
	}
	return &Canned{chooser: chooser}
}

// Compose implements Composer. It never fails.
func (c *Canned) Compose(_ context.Context, req Request) (Reply, error) {
	replies := Replies(req.Label)
	return Reply{
		Text:     replies[c.chooser.Choose(len(replies))],
		Source:   SourceCanned,
		Escalate: Escalates(req.Label),
	}, nil
}
