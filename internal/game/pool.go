package game

import "github.com/tahcohcat/daily-mystery/internal/models"

// mysteryPool is the rotation the daily selector indexes into. Order matters:
// changing it changes which mystery every date maps to.
var mysteryPool = []models.MysteryContent{
	{Type: models.MysteryTypeWord, Answer: "THE NARWHAL BACONS AT MIDNIGHT", Category: "Classic Reddit", Hints: []string{"A secret phrase from Reddit's early days", "Involves a marine animal", "Used to identify fellow Redditors in public"}},
	{Type: models.MysteryTypeWord, Answer: "THANKS FOR THE GOLD KIND STRANGER", Category: "Reddit Awards", Hints: []string{"Common response to receiving awards", "Shows gratitude to anonymous donors", "A Reddit cliché phrase"}},
	{Type: models.MysteryTypeWord, Answer: "REDDIT HUG OF DEATH", Category: "Reddit Culture", Hints: []string{"What happens when Reddit breaks a website", "Too much traffic is the cause", "An accidental DDoS from popularity"}},
	{Type: models.MysteryTypeWord, Answer: "TODAY I LEARNED", Category: "Reddit Acronym", Hints: []string{"Popular subreddit about facts", "Three letter acronym T_L", "Share interesting information"}},
	{Type: models.MysteryTypeWord, Answer: "ASK ME ANYTHING", Category: "Reddit Format", Hints: []string{"Q&A session format", "Celebrities often do these", "Three word phrase, first letters A M A"}},
	{Type: models.MysteryTypeWord, Answer: "RICKROLL", Category: "Internet Meme", Hints: []string{"A classic internet prank", "Never gonna give you up", "Involves a famous 80s singer"}},
	{Type: models.MysteryTypeWord, Answer: "TO BE OR NOT TO BE", Category: "Famous Quote", Hints: []string{"Shakespeare's most famous line", "From the play Hamlet", "A question about existence"}},
	{Type: models.MysteryTypeWord, Answer: "MAY THE FORCE BE WITH YOU", Category: "Movie Quote", Hints: []string{"Iconic sci-fi franchise blessing", "Jedi say this phrase", "From Star Wars"}},
	{Type: models.MysteryTypeWord, Answer: "WINTER IS COMING", Category: "TV Quote", Hints: []string{"House Stark's words", "Warning about the future", "Game of Thrones phrase"}},
	{Type: models.MysteryTypeWord, Answer: "LOREM IPSUM DOLOR SIT AMET", Category: "Famous Text", Hints: []string{"Placeholder text designers use", "Latin-sounding dummy text", "Starts with L_R_M"}},
	{Type: models.MysteryTypeWord, Answer: "THE CAKE IS A LIE", Category: "Gaming Meme", Hints: []string{"Portal video game phrase", "About a promised dessert", "Means false promises"}},
	{Type: models.MysteryTypeWord, Answer: "ALL YOUR BASE ARE BELONG TO US", Category: "Gaming Meme", Hints: []string{"Broken English translation", "From Zero Wing game", "Classic gaming meme from the 90s"}},
	{Type: models.MysteryTypeWord, Answer: "DO A BARREL ROLL", Category: "Gaming Quote", Hints: []string{"Star Fox command", "Peppy's advice", "Also a Google easter egg"}},
	{Type: models.MysteryTypeWord, Answer: "HODOR", Category: "TV Character", Hints: []string{"One word vocabulary", "Game of Thrones gentle giant", "Hold the door origin"}},
	{Type: models.MysteryTypeWord, Answer: "PRESS F TO PAY RESPECTS", Category: "Gaming Meme", Hints: []string{"From Call of Duty funeral scene", "Became a tribute meme", "Keyboard action to show mourning"}},
	{Type: models.MysteryTypeWord, Answer: "THIS IS THE WAY", Category: "Reddit Meme", Hints: []string{"Popular Star Wars series catchphrase", "Mandalorian saying", "Often spammed in comment chains"}},
	{Type: models.MysteryTypeWord, Answer: "AND MY AXE", Category: "Reddit Meme", Hints: []string{"Lord of the Rings reference", "Gimli offers his weapon", "Added to random comment chains"}},
	{Type: models.MysteryTypeWord, Answer: "STONKS", Category: "Reddit Meme", Hints: []string{"Intentional misspelling about stocks", "Shows stonk market gains", "From wallstreetbets culture"}},
	{Type: models.MysteryTypeWord, Answer: "TO THE MOON", Category: "Reddit Meme", Hints: []string{"Cryptocurrency and stock phrase", "Predicting massive price increases", "Popular in WSB and crypto subs"}},
	{Type: models.MysteryTypeWord, Answer: "WE LIKE THE STOCK", Category: "Reddit Meme", Hints: []string{"GameStop saga phrase", "Wallstreetbets rallying cry", "About holding investments"}},
	{Type: models.MysteryTypeWord, Answer: "DIAMOND HANDS", Category: "Reddit Meme", Hints: []string{"Refusing to sell despite losses", "Wallstreetbets term", "Opposite of paper hands"}},
	{Type: models.MysteryTypeWord, Answer: "APES TOGETHER STRONG", Category: "Reddit Meme", Hints: []string{"WSB community motto", "From Planet of the Apes", "About retail investor unity"}},
	{Type: models.MysteryTypeWord, Answer: "THIS GUY REDDITS", Category: "Reddit Meme", Hints: []string{"Acknowledging someone knows Reddit", "Silicon Valley reference", "This guy _____s format"}},
	{Type: models.MysteryTypeWord, Answer: "NICE", Category: "Reddit Meme", Hints: []string{"Response to the number 69", "One word response", "Creates comment chains"}},
	{Type: models.MysteryTypeWord, Answer: "I ALSO CHOOSE THIS GUYS DEAD WIFE", Category: "Reddit Meme", Hints: []string{"Dark humor legendary comment", "From an AskReddit thread", "Most infamous Reddit response"}},
	{Type: models.MysteryTypeWord, Answer: "INSTRUCTIONS UNCLEAR", Category: "Reddit Meme", Hints: []string{"When following directions goes wrong", "Usually followed by absurd outcome", "Common joke format"}},
	{Type: models.MysteryTypeWord, Answer: "FOUND THE MOBILE USER", Category: "Reddit Meme", Hints: []string{"When someone types R slash wrong", "Capital R gives it away", "Desktop vs mobile joke"}},
	{Type: models.MysteryTypeWord, Answer: "USERNAME CHECKS OUT", Category: "Reddit Meme", Hints: []string{"When someone's name matches their comment", "Points out fitting usernames", "Common Reddit observation"}},
	{Type: models.MysteryTypeWord, Answer: "THEY DID THE MATH", Category: "Reddit Meme", Hints: []string{"Appreciating complex calculations", "Often links to subreddit", "Followed by monster math"}},
	{Type: models.MysteryTypeWord, Answer: "OUR BATTLE WILL BE LEGENDARY", Category: "Reddit Meme", Hints: []string{"Kung Fu Panda reference", "Before an epic showdown", "Dramatic confrontation phrase"}},
	{Type: models.MysteryTypeWord, Answer: "IS THIS LOSS", Category: "Reddit Meme", Hints: []string{"Webcomic about miscarriage", "Four panel format", "Most referenced comic strip"}},
	{Type: models.MysteryTypeWord, Answer: "PERFECTLY BALANCED AS ALL THINGS SHOULD BE", Category: "Reddit Meme", Hints: []string{"Thanos philosophy", "About equilibrium", "Avengers villain quote"}},
	{Type: models.MysteryTypeWord, Answer: "YOU HAVE BEEN BANNED FROM PYONGYANG", Category: "Reddit Meme", Hints: []string{"Moderator joke", "North Korea reference", "Commentary ban threat"}},
	{Type: models.MysteryTypeWord, Answer: "HELLO THERE", Category: "Reddit Meme", Hints: []string{"Star Wars prequel quote", "General Kenobi greeting", "Always gets specific response"}},
	{Type: models.MysteryTypeWord, Answer: "GENERAL KENOBI", Category: "Reddit Meme", Hints: []string{"Response to Hello There", "General Grievous line", "Prequel meme chain"}},
	{Type: models.MysteryTypeWord, Answer: "I AM THE SENATE", Category: "Reddit Meme", Hints: []string{"Palpatine declaration", "Star Wars prequel", "Power grab moment"}},
	{Type: models.MysteryTypeWord, Answer: "IRONIC", Category: "Reddit Meme", Hints: []string{"One word Palpatine response", "About tragic irony", "Prequel meme"}},
	{Type: models.MysteryTypeWord, Answer: "DELETE THIS NEPHEW", Category: "Reddit Meme", Hints: []string{"NBA meme response", "When someone posts cringe", "Disapproving uncle energy"}},
	{Type: models.MysteryTypeWord, Answer: "SIR THIS IS A WENDYS", Category: "Reddit Meme", Hints: []string{"Response to rants", "The Office reference", "Wrong place for this speech"}},
	{Type: models.MysteryTypeWord, Answer: "WE DID IT REDDIT", Category: "Reddit Meme", Hints: []string{"Celebrating achievement", "Sometimes used ironically", "When Reddit accomplishes something"}},
	{Type: models.MysteryTypeWord, Answer: "PLAY STUPID GAMES WIN STUPID PRIZES", Category: "Reddit Meme", Hints: []string{"About consequences", "Foolish actions get results", "Common Reddit wisdom"}},
	{Type: models.MysteryTypeWord, Answer: "TECHNICALLY CORRECT THE BEST KIND OF CORRECT", Category: "Reddit Meme", Hints: []string{"Futurama quote", "About pedantic accuracy", "Bureaucrat line"}},
	{Type: models.MysteryTypeWord, Answer: "BIG IF TRUE", Category: "Reddit Meme", Hints: []string{"Skeptical response", "Would be significant", "Three word phrase"}},
	{Type: models.MysteryTypeWord, Answer: "THANKS I HATE IT", Category: "Reddit Meme", Hints: []string{"Subreddit about cursed content", "Abbreviated as TIHI", "Expressing disgust"}},
	{Type: models.MysteryTypeWord, Answer: "THATS WHAT SHE SAID", Category: "Reddit Meme", Hints: []string{"The Office joke", "Michael Scott classic", "Innuendo punchline"}},
	{Type: models.MysteryTypeWord, Answer: "NO YOU", Category: "Reddit Meme", Hints: []string{"Ultimate comeback", "Reverse uno card", "Two word response"}},
	{Type: models.MysteryTypeWord, Answer: "DANK MEMES CANT MELT STEEL BEAMS", Category: "Reddit Meme", Hints: []string{"Jet fuel parody", "Conspiracy theory joke", "About dank memes"}},
	{Type: models.MysteryTypeWord, Answer: "RETURN TO MONKE", Category: "Reddit Meme", Hints: []string{"Anti-modernity joke", "Reject humanity", "Embrace primal life"}},
	{Type: models.MysteryTypeWord, Answer: "BONK GO TO HORNY JAIL", Category: "Reddit Meme", Hints: []string{"Response to thirsty comments", "Doge with bat", "Inappropriate behavior punishment"}},
	{Type: models.MysteryTypeWord, Answer: "ALWAYS HAS BEEN", Category: "Reddit Meme", Hints: []string{"Astronaut betrayal meme", "Wait its all ___", "Shooter behind phrase"}},
	{Type: models.MysteryTypeWord, Answer: "ITS FREE REAL ESTATE", Category: "Reddit Meme", Hints: []string{"Tim and Eric sketch", "Claiming territory", "Commercial parody"}},
	{Type: models.MysteryTypeWord, Answer: "SUFFERING FROM SUCCESS", Category: "Reddit Meme", Hints: []string{"DJ Khaled album", "First world problems", "Winning but struggling"}},
	{Type: models.MysteryTypeWord, Answer: "THEY HAD US IN THE FIRST HALF", Category: "Reddit Meme", Hints: []string{"Football press conference", "Not gonna lie", "Unexpected twist phrase"}},
	{Type: models.MysteryTypeWord, Answer: "PERHAPS", Category: "Reddit Meme", Hints: []string{"Cow from Barnyard movie", "One word maybe response", "Sarcastic agreement"}},
	{Type: models.MysteryTypeWord, Answer: "SHAME", Category: "Reddit Meme", Hints: []string{"Game of Thrones walk", "Septa Unella bell", "One word judgment"}},
	{Type: models.MysteryTypeWord, Answer: "YOU UNDERESTIMATE MY POWER", Category: "Reddit Meme", Hints: []string{"Anakin before defeat", "High ground response", "Overconfident declaration"}},
	{Type: models.MysteryTypeWord, Answer: "ITS OVER ANAKIN I HAVE THE HIGH GROUND", Category: "Reddit Meme", Hints: []string{"Obi-Wan tactical advantage", "Before the lava fight end", "Prequel battle cry"}},
	{Type: models.MysteryTypeWord, Answer: "HELLO WORLD", Category: "Programming", Hints: []string{"First program everyone writes", "Classic programming tradition", "Two word greeting"}},
	{Type: models.MysteryTypeWord, Answer: "THERE ARE TEN TYPES OF PEOPLE", Category: "Programming Joke", Hints: []string{"Binary number joke", "Starts with \"There are...\"", "Those who understand binary and those who don't"}},
	{Type: models.MysteryTypeWord, Answer: "FORTY TWO", Category: "Sci-Fi", Hints: []string{"The answer to life, universe, and everything", "From Hitchhiker's Guide to the Galaxy", "A number spelled out"}},
	{Type: models.MysteryTypeWord, Answer: "WITH GREAT POWER COMES GREAT RESPONSIBILITY", Category: "Superhero Quote", Hints: []string{"Uncle Ben's advice", "Spider-Man wisdom", "About using power wisely"}},
	{Type: models.MysteryTypeWord, Answer: "LIVE LONG AND PROSPER", Category: "TV Quote", Hints: []string{"Vulcan greeting", "Accompanied by hand gesture", "From Star Trek"}},
}

// PoolSize is the number of mysteries in the daily rotation.
func PoolSize() int {
	return len(mysteryPool)
}
