// Package category builds the localized category table used to label menu
// sections and classifies freedesktop sub-categories into their top-level
// main categories.
package category

// Top-level main categories, in display order.
const (
	AudioVideo  = "AudioVideo"
	Development = "Development"
	Game        = "Game"
	Graphics    = "Graphics"
	Network     = "Network"
	Office      = "Office"
	Science     = "Science"
	Settings    = "Settings"
	System      = "System"
	Utility     = "Utility"
	Other       = "Other"
)

var topLevel = []string{
	AudioVideo, Development, Game, Graphics, Network, Office,
	Science, Settings, System, Utility, Other,
}

// additional maps each known sub-category (and legacy category name) to the
// top-level category it belongs to. Every top-level id maps to itself.
var additional = buildClassification(map[string][]string{
	AudioVideo: {
		"Audio", "Video", "Midi", "Mixer", "Sequencer", "Tuner", "TV",
		"AudioVideoEditing", "Player", "Recorder", "DiscBurning", "Music",
		"Sound & Video",
	},
	Development: {
		"Building", "Debugger", "IDE", "GUIDesigner", "Profiling",
		"RevisionControl", "Translation", "WebDevelopment", "Programming",
	},
	Game: {
		"ActionGame", "AdventureGame", "ArcadeGame", "BoardGame", "BlocksGame",
		"CardGame", "KidsGame", "LogicGame", "RolePlaying", "Shooter",
		"Simulation", "SportsGame", "StrategyGame", "Emulator", "Games",
	},
	Graphics: {
		"2DGraphics", "VectorGraphics", "RasterGraphics", "3DGraphics",
		"Scanning", "OCR", "Photography",
	},
	Network: {
		"Dialup", "InstantMessaging", "Chat", "IRCClient", "Feed",
		"FileTransfer", "HamRadio", "News", "P2P", "RemoteAccess", "Telephony",
		"VideoConference", "WebBrowser", "Internet", "Internet and Network",
	},
	Office: {
		"Calendar", "ContactManagement", "Database", "Dictionary", "Chart",
		"Email", "Finance", "FlowChart", "PDA", "ProjectManagement",
		"Presentation", "Spreadsheet", "WordProcessor", "Publishing", "Viewer",
	},
	Science: {
		"ArtificialIntelligence", "Astronomy", "Biology", "Chemistry",
		"Economy", "Electricity", "Geography", "Geology", "Geoscience",
		"History", "Humanities", "MedicalSoftware", "Physics", "Robotics",
		"Science & Math", "Spirituality", "Art", "Construction", "Languages",
		"ComputerScience", "DataVisualization", "ImageProcessing",
		"Literature", "Math", "NumericalAnalysis", "Sports",
		"ParallelComputing", "Education",
	},
	Settings: {
		"Preferences", "DesktopSettings", "HardwareSettings", "PackageManager",
		"Security", "Accessibility", "Administration", "Hardware",
		"Look and Feel", "Personal", "Universal Access",
	},
	System: {
		"FileTools", "FileManager", "TerminalEmulator", "Filesystem",
		"Monitor", "System Tools",
	},
	Utility: {
		"TextTools", "TelephonyTools", "Maps", "Archiving", "Compression",
		"Calculator", "Clock", "TextEditor", "Accessories",
	},
	Other: {
		"Programs",
	},
})

func buildClassification(groups map[string][]string) map[string]string {
	m := make(map[string]string)
	for main, subs := range groups {
		m[main] = main
		for _, sub := range subs {
			m[sub] = main
		}
	}
	return m
}

// Classify returns the top-level category for a category id. The second
// return value is false when the id is not known, which is distinct from
// the id classifying as Other.
func Classify(id string) (string, bool) {
	main, ok := additional[id]
	return main, ok
}

// AdditionalToMain is an alias for Classify.
func AdditionalToMain(id string) (string, bool) {
	return Classify(id)
}

// TopLevel returns the top-level category ids in display order.
func TopLevel() []string {
	out := make([]string, len(topLevel))
	copy(out, topLevel)
	return out
}

// IsTopLevel reports whether id is one of the top-level categories.
func IsTopLevel(id string) bool {
	main, ok := additional[id]
	return ok && main == id
}
