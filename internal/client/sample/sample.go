// Package sample holds the offline fallback content shown when the API
// cannot be reached, and the default filter options.
package sample

import "news-agency/internal/client/api"

var (
	techRevolution = api.Article{
		ID:       1,
		Title:    "Technology Revolution in Indian Cities",
		Content:  "India is witnessing a technological revolution with cities like Bangalore, Hyderabad, and Pune emerging as major IT hubs. The adoption of artificial intelligence, machine learning, and blockchain technologies is transforming various sectors including healthcare, education, and finance.",
		Region:   "National",
		Language: "English",
		Date:     "2024-01-15",
	}
	hyderabadMetro = api.Article{
		ID:       2,
		Title:    "हैदराबाद में नई मेट्रो लाइन का उद्घाटन",
		Content:  "हैदराबाद मेट्रो रेल की नई लाइन का आज उद्घाटन हुआ। इससे शहर के यातायात की समस्या में काफी राहत मिलने की उम्मीद है।",
		Region:   "Telangana",
		Language: "Hindi",
		Date:     "2024-01-14",
	}
	aiMilestone = api.Article{
		ID:       3,
		Title:    "సాంకేతిక పరిజ్ఞానంలో కొత్త పురోగతి",
		Content:  "కృత్రిమ మేధస్సు రంగంలో భారతీయ కంపెనీలు కొత్త మైలురాయిని సాధించాయి. ఈ పరిజ్ఞానం ఆరోగ్య రంగంలో విప్లవాత్మక మార్పులను తీసుకురానుంది.",
		Region:   "Andhra Pradesh",
		Language: "Telugu",
		Date:     "2024-01-13",
	}
	educationPolicy = api.Article{
		ID:       4,
		Title:    "National Education Policy Implementation Update",
		Content:  "The Ministry of Education announced significant progress in implementing the New Education Policy across all states. Universities are adapting their curricula to meet the new guidelines.",
		Region:   "National",
		Language: "English",
		Date:     "2024-01-12",
	}
	climateSummit = api.Article{
		ID:       5,
		Title:    "Climate Change Summit Results",
		Content:  "World leaders concluded the climate summit with ambitious targets for carbon neutrality. India pledged to increase renewable energy capacity significantly by 2030.",
		Region:   "National",
		Language: "English",
		Date:     "2024-01-11",
	}
)

// Public returns five articles for the reader page; the first three are
// featured. Each call returns a fresh slice.
func Public() []api.Article {
	out := []api.Article{techRevolution, hyderabadMetro, aiMilestone, educationPolicy, climateSummit}
	for i := range out[:3] {
		out[i].Featured = true
	}
	return out
}

// Admin returns three articles for the newsroom console.
func Admin() []api.Article {
	out := []api.Article{techRevolution, hyderabadMetro, climateSummit}
	out[0].Status = "published"
	out[1].Status = "published"
	out[2].ID = 3
	out[2].Status = "draft"
	return out
}

// PublicRegions are the reader page's region options when the API has none.
func PublicRegions() []string {
	return []string{"National", "Andhra Pradesh", "Telangana", "Karnataka", "Tamil Nadu", "Kerala"}
}

// PublicLanguages are the reader page's language options when the API has none.
func PublicLanguages() []string {
	return []string{"English", "Hindi", "Telugu", "Tamil", "Kannada", "Malayalam"}
}

// AdminRegions are the console's base region options.
func AdminRegions() []string {
	return append(PublicRegions(), "Maharashtra", "Delhi")
}

// AdminLanguages are the console's base language options.
func AdminLanguages() []string {
	return append(PublicLanguages(), "Marathi")
}
