package seeder

// Curated default content. Names must stay unique within their resource:
// the default scope is part of every user's duplicate-check universe.

var defaultBodyParts = []string{
	"Arms",
	"Back",
	"Chest",
	"Core",
	"Legs",
	"Neck",
	"Shoulders",
	"Full body",
}

type httpRefSeed struct {
	name        string
	ref         string
	description string
}

var defaultHttpRefs = []httpRefSeed{
	{
		name:        "Push-up form guide",
		ref:         "https://lifestyle.example.com/guides/push-up-form",
		description: "Common push-up mistakes and how to fix them",
	},
	{
		name:        "Plank variations video",
		ref:         "https://lifestyle.example.com/videos/plank-variations",
		description: "Six plank variations from beginner to advanced",
	},
	{
		name:        "Beginner meditation audio",
		ref:         "https://lifestyle.example.com/audio/beginner-meditation",
		description: "A guided ten minute session for beginners",
	},
	{
		name:        "Hydration basics",
		ref:         "https://lifestyle.example.com/articles/hydration-basics",
		description: "How much water an active adult actually needs",
	},
	{
		name:        "Stretching after workout",
		ref:         "https://lifestyle.example.com/guides/post-workout-stretching",
		description: "",
	},
}

type exerciseSeed struct {
	title          string
	description    string
	needsEquipment bool
	bodyParts      []string
	httpRefs       []string
}

var defaultExercises = []exerciseSeed{
	{
		title:       "Push-up",
		description: "Classic bodyweight push exercise",
		bodyParts:   []string{"Arms", "Chest", "Shoulders"},
		httpRefs:    []string{"Push-up form guide"},
	},
	{
		title:       "Plank",
		description: "Isometric core hold",
		bodyParts:   []string{"Core"},
		httpRefs:    []string{"Plank variations video"},
	},
	{
		title:       "Bodyweight squat",
		description: "Fundamental lower body movement",
		bodyParts:   []string{"Legs", "Core"},
	},
	{
		title:          "Dumbbell row",
		description:    "Single arm back row with a dumbbell",
		needsEquipment: true,
		bodyParts:      []string{"Back", "Arms"},
	},
	{
		title:          "Jump rope",
		description:    "Light cardio warm-up",
		needsEquipment: true,
		bodyParts:      []string{"Full body"},
	},
}

type workoutSeed struct {
	title       string
	description string
	exercises   []string
}

var defaultWorkouts = []workoutSeed{
	{
		title:       "Morning full body",
		description: "Short no-equipment routine to start the day",
		exercises:   []string{"Push-up", "Plank", "Bodyweight squat"},
	},
	{
		title:       "Upper body strength",
		description: "Push and pull work for the upper body",
		exercises:   []string{"Push-up", "Dumbbell row"},
	},
}

type mentalSeed struct {
	title       string
	description string
	mentalType  string
	httpRefs    []string
}

var defaultMentals = []mentalSeed{
	{
		title:       "Ten minute breathing meditation",
		description: "Guided breathing for stress relief",
		mentalType:  "MEDITATION",
		httpRefs:    []string{"Beginner meditation audio"},
	},
	{
		title:       "Morning affirmation",
		description: "A short affirmation practice to set intent for the day",
		mentalType:  "AFFIRMATION",
	},
}

type nutritionSeed struct {
	title         string
	description   string
	nutritionType string
	httpRefs      []string
}

var defaultNutritions = []nutritionSeed{
	{
		title:         "Vitamin D",
		description:   "Daily supplement for bone and immune health",
		nutritionType: "SUPPLEMENT",
	},
	{
		title:         "Overnight oats",
		description:   "Simple high fiber breakfast prepared the night before",
		nutritionType: "RECIPE",
		httpRefs:      []string{"Hydration basics"},
	},
}
