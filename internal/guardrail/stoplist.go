package guardrail

// stoplist holds common English and resume filler words that the extractor
// inevitably picks up. They are never treated as skill claims.
var stoplist = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true, "with": true,
	"by": true, "from": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true,
	"shall": true, "can": true, "need": true, "must": true, "it": true,
	"its": true, "this": true, "that": true, "these": true, "those": true,
	"i": true, "me": true, "my": true, "we": true, "us": true, "our": true,
	"you": true, "your": true, "he": true, "him": true, "his": true,
	"she": true, "her": true, "they": true, "them": true, "their": true,
	"what": true, "which": true, "who": true, "whom": true,
	"not": true, "no": true, "all": true, "each": true, "every": true,
	"both": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "than": true, "too": true, "very": true,
	"just": true, "also": true, "about": true, "up": true, "out": true,
	"new": true, "used": true, "using": true, "developed": true, "built": true,
	"created": true, "designed": true, "implemented": true, "managed": true,
	"led": true, "worked": true, "experience": true, "experienced": true,
	"proficient": true, "strong": true, "team": true, "project": true,
	"system": true, "application": true, "development": true,
	"engineering": true, "software": true, "data": true, "web": true,
	"cloud": true, "server": true, "client": true, "user": true,
	"business": true, "years": true, "year": true, "over": true,
	"across": true, "multiple": true, "various": true, "key": true,
	"core": true, "professional": true, "technical": true, "including": true,
	"ensured": true, "within": true, "collaborated": true, "distributed": true,
	"optimized": true, "integrated": true, "facilitated": true,
	"maintained": true, "performed": true, "involved": true, "provided": true,
	"high": true, "performance": true, "quality": true, "production": true,
	"services": true, "solutions": true, "features": true, "delivery": true,
	"successful": true, "driven": true, "focused": true, "based": true,
	"related": true, "associated": true,
}
