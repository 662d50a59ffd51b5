package simulate

// DefaultReplies are the canned peer messages.
var DefaultReplies = []string{
	"Hey there! How's your day going?",
	"That's really interesting! Tell me more!",
	"I was just thinking about that too!",
	"What are you up to today?",
	"Have you tried the new camera features?",
	"Did you see the latest stories? They're amazing!",
	"Let's catch up soon! I miss our chats",
	"Hope you're having a great time!",
}

var (
	truthQuestions = []string{
		"What's the most embarrassing thing you've done?",
		"Who was your first crush?",
		"What's a secret you've never told anyone?",
	}
	dareQuestions = []string{
		"Send a funny selfie to the group!",
		"Post a story with your weirdest face!",
		"Text someone 'I love pineapple on pizza'!",
	}
	roasts = []string{
		"You're like a cloud. When you disappear, it's a beautiful day.",
		"I'd agree with you, but then we'd both be wrong.",
		"You bring everyone so much joy when you leave the room.",
	}
	battleMoods = []string{"happy", "sad", "angry", "excited", "sleepy", "cool"}
)

// TruthOrDare returns a prompt for choice ("truth" or "dare").
func TruthOrDare(o Outcomes, choice string) string {
	qs := dareQuestions
	if choice == "truth" {
		qs = truthQuestions
	}
	return qs[o.Pick(len(qs))]
}

// Roast returns a roast line.
func Roast(o Outcomes) string {
	return roasts[o.Pick(len(roasts))]
}

// Battle is the result of one mood battle round.
type Battle struct {
	PlayerMood   string
	OpponentMood string
	PlayerWins   bool
}

// MoodBattle plays one round against a random opponent mood.
func MoodBattle(o Outcomes, playerMood string) Battle {
	return Battle{
		PlayerMood:   playerMood,
		OpponentMood: battleMoods[o.Pick(len(battleMoods))],
		PlayerWins:   o.Win(),
	}
}
