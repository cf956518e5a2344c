package render

import "github.com/pacphi/statusboard/pkg/timefmt"

// Labels holds every user-visible string of the dashboard in one language
type Labels struct {
	Title            string
	Subtitle         string
	Name             string
	Status           string
	LastCheckedAgo   string
	Details          string
	DetailHint       string
	Start            string
	Impact           string
	Duration         string
	Description      string
	Incidents        string
	NoIncidents      string
	NoDescription    string
	Ongoing          string
	CurrentStatus    string
	LastCheckFormat  string
	NotIndexedTitle  string
	NotIndexedLink   string
	Source           string
	ServiceStatus    string
	NoSearchResults  string
	DidYouMean       string
	StatusUp         string
	StatusFailing    string
	StatusUnknown    string
	UnknownStatusMsg string
}

var czechLabels = Labels{
	Title:            "Externí služby",
	Subtitle:         "Monitorování stavu API našich externích partnerů",
	Name:             "Název",
	Status:           "Stav",
	LastCheckedAgo:   "Poslední kontrola před",
	Details:          "Detaily",
	DetailHint:       "Zobrazit detaily",
	Start:            "Začátek (UTC)",
	Impact:           "Závažnost",
	Duration:         "Trvání",
	Description:      "Popis",
	Incidents:        "Incidenty",
	NoIncidents:      "Žádné incidenty neevidujeme",
	NoDescription:    "No description",
	Ongoing:          "(probíhá)",
	CurrentStatus:    "Aktuální stav",
	LastCheckFormat:  "Poslední kontrola oficiální %s status page (%s) proběhla před %s.",
	NotIndexedTitle:  "Incidents are not currently indexed for %s",
	NotIndexedLink:   "You can view the official status page at: %s",
	Source:           "Zdroj: Oficiální %s status stránka nebo API (%s)",
	ServiceStatus:    "Stav služby",
	NoSearchResults:  "No company found.",
	DidYouMean:       "Nenašli jsme %q. Možná jste hledali:",
	StatusUp:         "OK",
	StatusFailing:    "CHYBA",
	StatusUnknown:    "NEZNÁMÝ",
	UnknownStatusMsg: "Zatím nevíme zda služba funguje.",
}

var englishLabels = Labels{
	Title:            "External services",
	Subtitle:         "Monitoring the API status of our external partners",
	Name:             "Name",
	Status:           "Status",
	LastCheckedAgo:   "Last checked",
	Details:          "Details",
	DetailHint:       "Show details",
	Start:            "Start (UTC)",
	Impact:           "Impact",
	Duration:         "Duration",
	Description:      "Description",
	Incidents:        "Incidents",
	NoIncidents:      "No incidents recorded",
	NoDescription:    "No description",
	Ongoing:          "(ongoing)",
	CurrentStatus:    "Current status",
	LastCheckFormat:  "The official %s status page (%s) was last checked %s.",
	NotIndexedTitle:  "Incidents are not currently indexed for %s",
	NotIndexedLink:   "You can view the official status page at: %s",
	Source:           "Source: official %s status page or API (%s)",
	ServiceStatus:    "Service status",
	NoSearchResults:  "No company found.",
	DidYouMean:       "%q was not found. Did you mean:",
	StatusUp:         "OK",
	StatusFailing:    "ERROR",
	StatusUnknown:    "UNKNOWN",
	UnknownStatusMsg: "We do not know yet whether the service works.",
}

// LabelsFor returns the label set for lang, Czech by default
func LabelsFor(lang timefmt.Language) Labels {
	if lang == timefmt.LanguageEnglish {
		return englishLabels
	}
	return czechLabels
}
