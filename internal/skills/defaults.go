package skills

var defaultRoles = []Role{
	{Name: "Data Scientist", Skills: []string{"Machine Learning", "Deep Learning", "Statistics", "Python", "SQL"}},
	{Name: "Web Developer", Skills: []string{"HTML", "CSS", "JavaScript", "React", "Node.js"}},
	{Name: "Android Developer", Skills: []string{"Java", "Kotlin", "Firebase", "Android Studio"}},
	{Name: "Python Developer", Skills: []string{"Python", "Django", "Flask", "APIs"}},
	{Name: "Java Developer", Skills: []string{"Core Java", "Spring Boot", "Hibernate"}},
}

var defaultAdvice = map[string]string{
	"machine learning": "Build and evaluate a few supervised models end to end on a public dataset.",
	"deep learning":    "Train a small neural network with PyTorch or TensorFlow and explain its results.",
	"statistics":       "Review hypothesis testing, distributions and regression basics.",
	"python":           "Practice idiomatic Python and publish a small project with tests.",
	"sql":              "Write joins, window functions and aggregations against a real schema.",
	"html":             "Build semantic, accessible page layouts.",
	"css":              "Learn flexbox, grid and responsive design.",
	"javascript":       "Get comfortable with modern ES features, promises and the DOM.",
	"react":            "Build a component-based app with hooks and state management.",
	"node.js":          "Create a REST service on Node.js with routing and persistence.",
	"java":             "Strengthen core Java: collections, generics and concurrency.",
	"kotlin":           "Port a small Android screen to Kotlin and use coroutines.",
	"firebase":         "Add Firebase authentication and Firestore to a sample app.",
	"android studio":   "Learn the Android Studio debugger, profiler and layout editor.",
	"django":           "Build a Django app with models, views and the admin site.",
	"flask":            "Ship a small Flask API with blueprints and tests.",
	"apis":             "Design and document a REST API, including errors and pagination.",
	"core java":        "Review the JVM memory model, exceptions and the standard library.",
	"spring boot":      "Build a Spring Boot service with REST controllers and configuration profiles.",
	"hibernate":        "Map entities with Hibernate and learn lazy loading and transactions.",
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(defaultRoles, defaultAdvice)
	if err != nil {
		panic(err)
	}
	return c
}
