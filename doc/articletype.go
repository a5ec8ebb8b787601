package doc

// ArticleType is the closed internal taxonomy that both source vocabularies
// map onto. A document whose source string has no table entry keeps a nil
// type and its raw string.
type ArticleType string

const (
	TypeResearchArticle  ArticleType = "research-article"
	TypeReview           ArticleType = "review"
	TypeCaseReport       ArticleType = "case-report"
	TypeEditorial        ArticleType = "editorial"
	TypeLetter           ArticleType = "letter"
	TypeComment          ArticleType = "comment"
	TypeNews             ArticleType = "news"
	TypeClinicalTrial    ArticleType = "clinical-trial"
	TypeCorrection       ArticleType = "correction"
	TypeRetraction       ArticleType = "retraction"
	TypeSystematicReview ArticleType = "systematic-review"
	TypeDataPaper        ArticleType = "data-paper"
	TypeMethodsArticle   ArticleType = "methods-article"
	TypeChapterArticle   ArticleType = "chapter-article"
	TypeCommunityComment ArticleType = "community-comment"
	TypeOther            ArticleType = "other"
)

// jatsArticleTypes maps the JATS article-type attribute vocabulary onto the
// internal taxonomy.
var jatsArticleTypes = map[string]ArticleType{
	"research-article":    TypeResearchArticle,
	"brief-report":        TypeResearchArticle,
	"rapid-communication": TypeResearchArticle,
	"report":              TypeResearchArticle,
	"review-article":      TypeReview,
	"review":              TypeReview,
	"case-report":         TypeCaseReport,
	"case-study":          TypeCaseReport,
	"editorial":           TypeEditorial,
	"introduction":        TypeEditorial,
	"letter":              TypeLetter,
	"reply":               TypeLetter,
	"article-commentary":  TypeComment,
	"commentary":          TypeComment,
	"discussion":          TypeComment,
	"editorial-comment":   TypeComment,
	"news":                TypeNews,
	"announcement":        TypeNews,
	"obituary":            TypeNews,
	"clinical-trial":      TypeClinicalTrial,
	"correction":          TypeCorrection,
	"addendum":            TypeCorrection,
	"retraction":          TypeRetraction,
	"expression-of-concern": TypeRetraction,
	"systematic-review":     TypeSystematicReview,
	"meta-analysis":         TypeSystematicReview,
	"data-paper":            TypeDataPaper,
	"methods-article":       TypeMethodsArticle,
	"protocol":              TypeMethodsArticle,
	"chapter-article":       TypeChapterArticle,
	"community-comment":     TypeCommunityComment,
	"abstract":              TypeOther,
	"book-review":           TypeOther,
	"product-review":        TypeOther,
	"oration":               TypeOther,
	"other":                 TypeOther,
}

// pubmedPublicationTypes maps PublicationType strings from citation-database
// records onto the internal taxonomy.
var pubmedPublicationTypes = map[string]ArticleType{
	"Journal Article":                      TypeResearchArticle,
	"Comparative Study":                    TypeResearchArticle,
	"Evaluation Study":                     TypeResearchArticle,
	"Multicenter Study":                    TypeResearchArticle,
	"Observational Study":                  TypeResearchArticle,
	"Twin Study":                           TypeResearchArticle,
	"Validation Study":                     TypeResearchArticle,
	"Review":                               TypeReview,
	"Scientific Integrity Review":          TypeReview,
	"Case Reports":                         TypeCaseReport,
	"Editorial":                            TypeEditorial,
	"Letter":                               TypeLetter,
	"Comment":                              TypeComment,
	"News":                                 TypeNews,
	"Newspaper Article":                    TypeNews,
	"Clinical Trial":                       TypeClinicalTrial,
	"Clinical Trial, Phase I":              TypeClinicalTrial,
	"Clinical Trial, Phase II":             TypeClinicalTrial,
	"Clinical Trial, Phase III":            TypeClinicalTrial,
	"Clinical Trial, Phase IV":             TypeClinicalTrial,
	"Clinical Trial Protocol":              TypeMethodsArticle,
	"Controlled Clinical Trial":            TypeClinicalTrial,
	"Randomized Controlled Trial":          TypeClinicalTrial,
	"Pragmatic Clinical Trial":             TypeClinicalTrial,
	"Clinical Study":                       TypeClinicalTrial,
	"Published Erratum":                    TypeCorrection,
	"Corrected and Republished Article":    TypeCorrection,
	"Retraction of Publication":            TypeRetraction,
	"Retracted Publication":                TypeRetraction,
	"Systematic Review":                    TypeSystematicReview,
	"Meta-Analysis":                        TypeSystematicReview,
	"Dataset":                              TypeDataPaper,
	"Practice Guideline":                   TypeMethodsArticle,
	"Guideline":                            TypeMethodsArticle,
	"Technical Report":                     TypeMethodsArticle,
	"Historical Article":                   TypeOther,
	"Biography":                            TypeOther,
	"Bibliography":                         TypeOther,
	"Congress":                             TypeOther,
	"Consensus Development Conference":     TypeOther,
	"Consensus Development Conference, NIH": TypeOther,
	"Duplicate Publication":                TypeOther,
	"English Abstract":                     TypeOther,
	"Interview":                            TypeOther,
	"Lecture":                              TypeOther,
	"Legal Case":                           TypeOther,
	"Legislation":                          TypeOther,
	"Portrait":                             TypeOther,
	"Address":                              TypeOther,
}

// ClassifyJATS maps a JATS article-type attribute value onto the internal
// taxonomy. ok is false when the vocabulary is unrecognized.
func ClassifyJATS(raw string) (ArticleType, bool) {
	t, ok := jatsArticleTypes[raw]
	return t, ok
}

// ClassifyPubMed picks the article type from a record's publication type
// strings: the first candidate in document order with a table entry wins.
func ClassifyPubMed(candidates []string) (ArticleType, bool) {
	for _, c := range candidates {
		if t, ok := pubmedPublicationTypes[c]; ok {
			return t, true
		}
	}
	return "", false
}
