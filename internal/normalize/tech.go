package normalize

import (
	"strings"

	"remote-jobs-pipeline/internal/models"
)

// TechVocabulary is the ordered list of recognized skill tags.
var TechVocabulary = []string{
	"React", "Next.js", "Vue", "Angular", "Svelte",
	"Node.js", "Express", "Django", "Flask", "FastAPI",
	"Python", "JavaScript", "TypeScript", "Go", "Rust", "Java", "C#", "Ruby",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"AWS", "GCP", "Azure", "Docker", "Kubernetes", "Terraform",
	"GraphQL", "REST", "gRPC",
	"TensorFlow", "PyTorch", "Pandas", "Spark",
	"Figma", "Sketch", "Adobe XD",
	"Git", "CI/CD", "Jenkins", "GitHub Actions",
	"Tailwind CSS", "SASS", "CSS",
	"Linux", "Nginx", "Apache",
	"Kafka", "RabbitMQ", "Celery",
	"Snowflake", "BigQuery", "Redshift",
}

// TopTechSkills are the skills tracked by market snapshots.
var TopTechSkills = []string{
	"React", "Python", "TypeScript", "JavaScript", "Node.js", "AWS", "Docker",
	"Kubernetes", "Go", "Rust", "Java", "PostgreSQL", "MongoDB", "GraphQL",
	"Next.js", "Vue", "Angular", "Django", "Ruby", "Terraform", "GCP", "Azure",
	"TensorFlow", "PyTorch", "Figma", "Tailwind CSS",
}

var (
	visaKeywords  = []string{"visa sponsor", "visa sponsorship", "work permit", "relocation"}
	asyncKeywords = []string{"async", "asynchronous", "flexible hours", "flexible schedule", "any timezone"}
)

// ExtractTechStack returns vocabulary tags found in text, in vocabulary
// order, capped at ten.
func ExtractTechStack(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}
	lower := strings.ToLower(text)
	for _, tech := range TechVocabulary {
		if strings.Contains(lower, strings.ToLower(tech)) {
			found = append(found, tech)
			if len(found) == models.MaxTechStackTags {
				break
			}
		}
	}
	return found
}

// DetectVisaSponsorship reports whether the text mentions visa sponsorship.
func DetectVisaSponsorship(text string) bool {
	return ContainsAny(visaKeywords...)(strings.ToLower(text))
}

// DetectAsyncFriendly reports whether the text advertises asynchronous work.
func DetectAsyncFriendly(text string) bool {
	return ContainsAny(asyncKeywords...)(strings.ToLower(text))
}
