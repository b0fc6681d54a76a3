// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

// stopwords are excluded from token frequency tables and term sets. The set
// mixes general English function words with boilerplate academic vocabulary
// that carries no topical signal.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "been": true, "from": true, "this": true,
	"that": true, "with": true, "they": true, "will": true, "each": true,
	"make": true, "like": true, "into": true, "over": true, "such": true,
	"than": true, "them": true, "then": true, "these": true, "some": true,
	"would": true, "other": true, "about": true, "which": true,
	"their": true, "there": true, "could": true, "more": true, "also": true,
	"most": true, "here": true, "both": true, "after": true, "those": true,
	"using": true, "used": true, "based": true, "show": true, "shown": true,
	"well": true, "however": true, "between": true, "through": true,
	"where": true, "while": true, "during": true, "before": true,
	"should": true, "results": true, "paper": true, "study": true,
	"method": true, "methods": true, "approach": true, "propose": true,
	"proposed": true, "present": true, "presented": true,
	"demonstrate": true, "existing": true, "recent": true, "first": true,
	"second": true, "new": true, "novel": true, "different": true,
	"important": true, "significant": true, "provide": true,
	"provides": true, "including": true, "across": true, "within": true,
	"without": true, "performance": true, "compared": true, "model": true,
	"models": true, "data": true, "analysis": true,
}

// IsStopword reports whether the token is in the shared stop-word set.
// Exported for the scoring engine, which builds its term sets with the same
// vocabulary so topic scores stay consistent with extraction.
func IsStopword(token string) bool { return stopwords[token] }

// patternEntry maps a label to the substrings that indicate it. Entries are
// matched by case-insensitive containment; ties in hit count are broken by
// table order, so the order below is load-bearing.
type patternEntry struct {
	label    string
	patterns []string
}

// domainTable maps academic domains to indicator phrases.
var domainTable = []patternEntry{
	{"machine learning", []string{"machine learning", "deep learning", "neural network", "supervised", "unsupervised", "reinforcement learning", "classification", "regression"}},
	{"natural language processing", []string{"natural language", "nlp", "text mining", "language model", "sentiment", "named entity", "parsing", "translation", "tokeniz"}},
	{"computer vision", []string{"computer vision", "image recognition", "object detection", "segmentation", "convolutional", "visual", "image classification"}},
	{"genomics", []string{"genome", "genomic", "dna", "rna", "sequencing", "gene expression", "transcriptom", "epigenom"}},
	{"neuroscience", []string{"neuroscience", "neural", "brain", "cognitive", "fmri", "eeg", "neuroimaging", "synaptic"}},
	{"climate science", []string{"climate", "global warming", "greenhouse", "carbon", "atmospheric", "temperature anomal"}},
	{"public health", []string{"epidemiol", "public health", "pandemic", "vaccine", "mortality", "morbidity", "disease surveillance"}},
	{"materials science", []string{"materials science", "nanostructur", "polymer", "alloy", "crystallin", "thin film"}},
	{"quantum computing", []string{"quantum comput", "qubit", "quantum circuit", "quantum entangle", "superposition"}},
	{"astrophysics", []string{"astrophysic", "stellar", "galaxy", "cosmolog", "exoplanet", "dark matter", "gravitational"}},
	{"renewable energy", []string{"solar cell", "wind energy", "renewable", "photovoltaic", "energy storage", "battery"}},
	{"economics", []string{"economic", "market", "inflation", "monetary", "fiscal", "behavioral economics"}},
	{"chemistry", []string{"chemical", "molecular", "synthesis", "catalyst", "organic chemistry", "reaction mechanism"}},
	{"robotics", []string{"robot", "autonomous", "manipulation", "motion planning", "swarm", "human-robot"}},
	{"cybersecurity", []string{"security", "cryptograph", "malware", "intrusion detection", "vulnerability", "encryption"}},
	{"bioinformatics", []string{"bioinformatic", "protein structure", "sequence alignment", "phylogenet", "protein folding"}},
	{"statistics", []string{"statistical", "bayesian", "regression", "hypothesis test", "probability", "stochastic"}},
	{"medicine", []string{"clinical", "patient", "treatment", "diagnosis", "therapeutic", "randomized trial", "placebo"}},
}

// methodologyTable maps research methodologies to indicator phrases.
var methodologyTable = []patternEntry{
	{"deep learning", []string{"deep learning", "neural network", "cnn", "rnn", "lstm", "transformer", "attention mechanism", "backpropagation"}},
	{"statistical analysis", []string{"statistical", "regression", "anova", "chi-square", "t-test", "confidence interval", "p-value"}},
	{"randomized controlled trial", []string{"randomized", "controlled trial", "rct", "placebo", "double-blind"}},
	{"survey methodology", []string{"survey", "questionnaire", "likert", "respondent"}},
	{"simulation", []string{"simulation", "monte carlo", "agent-based", "finite element"}},
	{"qualitative analysis", []string{"qualitative", "interview", "thematic analysis", "grounded theory"}},
	{"meta-analysis", []string{"meta-analysis", "systematic review", "effect size", "heterogeneity"}},
	{"experimental", []string{"experiment", "laboratory", "controlled experiment", "in vitro", "in vivo"}},
	{"computational modeling", []string{"computational model", "numerical", "differential equation", "optimization"}},
	{"transfer learning", []string{"transfer learning", "fine-tun", "pre-train", "domain adaptation"}},
}

// bridgeEntry names the interdisciplinary field implied by a domain pair.
type bridgeEntry struct {
	a, b   string
	bridge string
}

// bridgeTable is the fixed pairwise domain-combination lookup.
var bridgeTable = []bridgeEntry{
	{"machine learning", "medicine", "medical AI"},
	{"machine learning", "genomics", "computational genomics"},
	{"machine learning", "materials science", "materials informatics"},
	{"statistics", "genomics", "statistical genetics"},
	{"neuroscience", "machine learning", "computational neuroscience"},
	{"economics", "machine learning", "computational economics"},
	{"chemistry", "machine learning", "cheminformatics"},
	{"climate science", "statistics", "climate modeling"},
	{"robotics", "machine learning", "intelligent robotics"},
}
