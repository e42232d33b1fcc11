package web

import (
	"strconv"
	"strings"

	vm "github.com/ericfisherdev/iocpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/iocpanel/internal/application"
	"github.com/ericfisherdev/iocpanel/internal/domain/model"
)

// navLinks is the sidebar. Only the dashboard is served by this binary; the
// other pages belong to the wider product.
var navLinks = []vm.NavLinkViewModel{
	{Label: "Dashboard", Path: "/"},
	{Label: "Modules", Path: "/modules"},
	{Label: "Protocols", Path: "/protocols"},
	{Label: "API Endpoints", Path: "/api"},
	{Label: "Channels", Path: "/channels"},
	{Label: "Database", Path: "/database"},
	{Label: "Security", Path: "/security"},
}

type statCard struct {
	label string
	path  string
}

var statCards = map[model.EntityKind]statCard{
	model.EntityModules:      {label: "Active Modules", path: "/modules"},
	model.EntityProtocols:    {label: "Protocols", path: "/protocols"},
	model.EntityAPIEndpoints: {label: "API Endpoints", path: "/api"},
	model.EntityChannels:     {label: "Notification Channels", path: "/channels"},
}

// toNavViewModels marks the link matching currentPath as active.
func toNavViewModels(currentPath string) []vm.NavLinkViewModel {
	links := make([]vm.NavLinkViewModel, len(navLinks))
	copy(links, navLinks)
	for i := range links {
		links[i].Active = links[i].Path == currentPath
	}
	return links
}

// toDashboardViewModel converts the session and dashboard summary into a DashboardViewModel.
func toDashboardViewModel(session model.Session, d application.Dashboard, csrf, currentPath string) vm.DashboardViewModel {
	stats := make([]vm.StatCardViewModel, 0, len(d.Counts))
	for _, c := range d.Counts {
		card, ok := statCards[c.Kind]
		if !ok {
			card = statCard{label: string(c.Kind)}
		}
		stats = append(stats, vm.StatCardViewModel{
			Label: card.label,
			Value: strconv.Itoa(c.Count),
			Path:  card.path,
		})
	}

	status := make([]vm.StatusItemViewModel, 0, len(d.Status))
	for _, s := range d.Status {
		status = append(status, vm.StatusItemViewModel{Label: s.Label, State: s.State, Tone: string(s.Tone)})
	}

	activity := make([]vm.ActivityItemViewModel, 0, len(d.Activity))
	for _, a := range d.Activity {
		activity = append(activity, vm.ActivityItemViewModel{When: a.When, HTML: RenderMarkdown(a.Text)})
	}

	return vm.DashboardViewModel{
		Username:  session.Username,
		RoleLabel: roleLabel(session.Role),
		CSRFToken: csrf,
		Nav:       toNavViewModels(currentPath),
		Stats:     stats,
		Status:    status,
		Activity:  activity,
	}
}

// roleLabel turns "super_admin" into "Super Admin".
func roleLabel(role model.Role) string {
	words := strings.Fields(strings.ReplaceAll(string(role), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
