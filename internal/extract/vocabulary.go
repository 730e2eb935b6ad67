package extract

// vocabulary is the hand-curated technical-skill vocabulary scanned against
// lowercased input. Matching is by plain substring, not word boundary; short
// entries like "r" or "go" can fire inside unrelated words. That false-positive
// rate is a known limitation of the product, kept behind this package's
// interface so a stricter matcher can replace it without touching callers.
var vocabulary = []string{
	// Programming Languages
	"javascript", "python", "java", "c++", "c#", "php", "ruby", "go", "rust", "swift", "kotlin",
	"typescript", "dart", "scala", "r", "matlab", "perl", "haskell", "clojure", "elixir",

	// Frameworks & Libraries
	"react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "laravel",
	"rails", "asp.net", "jquery", "bootstrap", "tailwind", "material-ui", "ant design",
	"redux", "vuex", "mobx", "graphql", "apollo", "prisma", "sequelize", "mongoose",

	// Databases
	"mongodb", "postgresql", "mysql", "sqlite", "redis", "elasticsearch", "dynamodb",
	"cassandra", "neo4j", "firebase", "supabase", "planetscale",

	// Cloud & DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins",
	"git", "github", "gitlab", "bitbucket", "ci/cd", "devops", "microservices",

	// AI & ML
	"machine learning", "ai", "artificial intelligence", "deep learning", "neural networks",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "matplotlib", "seaborn",
	"opencv", "nltk", "spacy", "transformers", "bert", "gpt", "computer vision",

	// Web Technologies
	"html", "css", "sass", "less", "webpack", "vite", "babel", "eslint", "prettier",
	"rest", "api", "oauth", "jwt", "oauth2", "openid", "websocket", "socket.io",

	// Mobile & Desktop
	"react native", "flutter", "xamarin", "ionic", "cordova", "electron", "tauri",
	"android", "ios", "objective-c",

	// Design & UX
	"ui/ux", "design", "figma", "sketch", "adobe xd", "photoshop", "illustrator",
	"invision", "framer", "protopie", "user research", "wireframing", "prototyping",

	// Project Management
	"agile", "scrum", "kanban", "jira", "trello", "asana", "notion", "confluence",
	"waterfall", "lean", "six sigma",

	// Testing
	"testing", "qa", "selenium", "cypress", "jest", "mocha", "chai", "pytest",
	"unit testing", "integration testing", "e2e testing", "tdd", "bdd",

	// Blockchain & Web3
	"blockchain", "web3", "ethereum", "solidity", "smart contracts", "defi", "nft",
	"metamask", "web3.js", "ethers.js", "hardhat", "truffle", "ipfs",

	// Data Science
	"data science", "data analysis", "data visualization", "tableau", "power bi",
	"sql", "nosql", "data mining", "statistics", "sas", "spss",
}

// stopWords are common English function words dropped from extraction results.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"a": true, "an": true, "as": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "this": true, "that": true, "these": true,
	"those": true,
}
