// Package console is the interactive terminal client of berdoz.
//
// It keeps one filtered view model per module, loaded over the REST API, and
// exposes them through a small read-eval-print loop:
//
//	use payroll          select the active module
//	load                 fetch the module collection
//	list                 print the visible rows and their totals
//	search <words>       fuzzy query over the active module
//	year <y|all>         table filter year
//	month <m|all>        table filter month
//	summary <y|all> [m]  headline filter
//	create               read a JSON record and save it
//	delete <id>          delete a record
//	unlock / lock        open or close the module gate
//	find <words>         search every module on the server
//	upload <path> [dir]  upload an attachment
//	exit | quit          leave
package console
