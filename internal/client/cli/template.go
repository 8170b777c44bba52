package cli

const profileTemplate = `
=== Profile ===

ID:       {{.ID}}
Username: {{.Username}}
Email:    {{.Email}}
Role:     {{if .IsAdmin}}admin{{else}}user{{end}}
{{- with .TodoCount }}
Todos:    {{.}}
{{- end}}
{{- with .JoinedAt }}
Joined:   {{date .}}
{{- end}}
`

const taskTemplate = `
=== Todo #{{.ID}} ===

Title:   {{.Title}}
Status:  {{if .Completed}}completed{{else}}pending{{end}}
Owner:   {{.OwnerUsername}}
{{- if .Description }}
Description:
---
{{.Description}}
---
{{- end}}
Created: {{date .CreatedAt}}
Updated: {{date .UpdatedAt}}
`

const browseHelp = `Commands:
  n, next            next page
  p, prev            previous page
  g, page N          go to page N
  s, size N          set page size (back to page 1)
  r, reload          reload the current page
  u, user ID         show one user's todos (admin, 0 = everyone)
  a, add             create a todo
  e, edit ID         edit a todo on this page
  t, toggle ID       toggle completion
  d, delete ID       delete a todo
  h, help            this help
  q, quit            leave`
