package classifier

// Vocabulary holds every keyword table the classifier matches against.
// Tables are treated as immutable after construction; tests substitute
// smaller vocabularies for focused cases.
type Vocabulary struct {
	//hard rejections
	Technical []string
	Seeker    []string

	//hiring intent
	OfficialHiring []string
	Hiring         []string

	//role tiers, highest value first
	Ambassador []string
	Community  []string
	Marketing  []string
	Web3       []string

	//application paths
	DM          []string
	Comment     []string
	Email       []string
	Application []string

	//penalties
	Spam    []string
	Farming []string
}

// DefaultVocabulary returns the production keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Technical: []string{
			"developer", "engineer", "solidity", "rust",
			"smart contract", "blockchain developer",
			"frontend", "backend", "full stack", "devops",
		},
		Seeker: []string{
			"i'm looking for", "i am looking for", "im looking for",
			"looking for a job", "anyone hiring", "does anyone know",
			"anyone know", "open to work", "hire me", "my portfolio",
		},
		OfficialHiring: []string{
			"we are hiring", "we're hiring", "now hiring", "is hiring",
			"hiring now", "join our team", "open position", "open role",
			"we are looking for", "we're looking for",
		},
		Hiring: []string{
			"hiring", "looking for", "seeking", "recruiting",
			"wanted", "position", "role", "opportunity", "apply",
		},
		Ambassador: []string{
			"ambassador", "brand ambassador", "community ambassador",
			"kol", "key opinion leader", "influencer",
			"advocate", "evangelist", "promoter",
			"representative", "spokesperson",
		},
		Community: []string{
			"community manager", "community lead", "community mod",
			"discord mod", "telegram admin", "moderator",
			"social media manager", "social media",
			"content creator", "content writer",
		},
		Marketing: []string{
			"marketing", "growth", "partnerships",
			"business development", "bd manager",
		},
		Web3: []string{
			"web3", "crypto", "defi", "nft",
		},
		DM: []string{
			"dm us", "dm me", "dm to apply", "send a dm", "dms open",
			"dm for details",
		},
		Comment: []string{
			"comment below", "comment to apply", "drop a comment",
			"reply to apply", "reply below",
		},
		Email: []string{
			"email", "send your cv", "send resume",
		},
		Application: []string{
			"apply", "application", "form", "notion", "airtable",
		},
		Spam: []string{
			"airdrop", "giveaway", "100x", "moon", "lambo", "free tokens",
		},
		Farming: []string{
			"tag a friend", "tag your friends",
			"tag 1 friend", "tag 2 friends", "tag 3 friends",
			"tag 4 friends", "tag 5 friends", "tag 6 friends",
			"tag 7 friends", "tag 8 friends", "tag 9 friends",
			"retweet and", "rt and", "retweet to",
		},
	}
}
