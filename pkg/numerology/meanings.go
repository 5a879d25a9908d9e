package numerology

// fallbackMeaning is returned for any number outside the mapped tables.
// With the reduction rule in place the only reachable unmapped value is 0
// (a name containing no letters).
const fallbackMeaning = "A unique energy that resists simple description."

var expressionMeanings = map[int]string{
	1:  "A natural leader who carves an independent path and thrives on initiative.",
	2:  "A diplomat whose talents shine in partnership, mediation, and quiet influence.",
	3:  "A creative communicator with an instinct for expression, wit, and optimism.",
	4:  "A builder who turns ideas into durable results through discipline and order.",
	5:  "An adventurer wired for change, freedom, and the energy of new experiences.",
	6:  "A nurturer whose strength lies in responsibility, harmony, and care for others.",
	7:  "An analyst drawn to depth, research, and the quiet pursuit of understanding.",
	8:  "An executive presence with ambition, material savvy, and organizational power.",
	9:  "A humanitarian whose gifts are compassion, breadth of vision, and generosity.",
	11: "An illuminator carrying heightened intuition and the drive to inspire others.",
	22: "A master builder able to translate grand visions into concrete achievement.",
	33: "A master teacher devoted to uplifting others through selfless guidance.",
}

var soulUrgeMeanings = map[int]string{
	1:  "Deep down you crave independence and the freedom to lead your own way.",
	2:  "Your heart seeks harmony, companionship, and emotional connection.",
	3:  "You are inwardly driven to create and to share joy through self-expression.",
	4:  "You long for stability, order, and a life built on solid foundations.",
	5:  "Your inner self hungers for variety, travel, and unrestricted experience.",
	6:  "You are moved by a desire to protect, to heal, and to hold family close.",
	7:  "Your soul seeks solitude, wisdom, and answers to life's deeper questions.",
	8:  "You are motivated by achievement, recognition, and material security.",
	9:  "Your heart answers to the wider world, pulled toward service and giving.",
	11: "You carry an inner calling toward spiritual insight and inspiration.",
	22: "Your deepest urge is to leave something lasting and large behind.",
	33: "You are pulled toward compassionate service on the grandest scale.",
}

var personalityMeanings = map[int]string{
	1:  "Others see you as confident, decisive, and unafraid to go first.",
	2:  "You come across as gentle, considerate, and easy to confide in.",
	3:  "People experience you as charming, expressive, and fun to be around.",
	4:  "You project reliability; people instinctively trust you with the details.",
	5:  "You appear energetic and adaptable, a magnet for new situations.",
	6:  "You radiate warmth; strangers sense they can lean on you.",
	7:  "You seem reserved and thoughtful, a person of hidden depths.",
	8:  "You project authority and competence, someone built for charge.",
	9:  "You come across as worldly and gracious, with an open-handed manner.",
	11: "There is an electric, inspiring quality to your presence.",
	22: "You give the impression of quiet, immovable capability.",
	33: "People sense an unusual degree of warmth and devotion in you.",
}

func meaningFor(table map[int]string, number int) string {
	if meaning, ok := table[number]; ok {
		return meaning
	}
	return fallbackMeaning
}
