package bookvox

import (
	"fmt"
	"strings"
)

// CorrectionInstruction introduces the source text in the user message sent
// to a correction service.
const CorrectionInstruction = "Texte OCR à corriger :\n\n"

// correction describes one allowed edit in the correction prompt.
type correction struct {
	perm Permission
	text string
}

var corrections = []correction{
	{AllowCharacterFixes, `Erreurs de caractères évidentes : l→I, O→0, rn→m, vv→w, |→l`},
	{AllowSpacingFixes, `Espaces manquants après la ponctuation : "mot.Mot" → "mot. Mot"`},
	{AllowHyphenJoin, `Tirets de césure en fin de ligne : "indé-\npendance" → "indépendance"`},
	{AllowDuplicateNoise, `Lettres ou mots courts répétés à l'identique : "h h" → "h", "le le" → "le"`},
	{AllowIsolatedNoise, `Lettres isolées sans sens : "l l", "aa bb" → supprimer`},
	{AllowSymbolNoise, `Symboles parasites isolés : "|", "~", "^", "_" → supprimer`},
	{AllowRuleNoise, `Suites de tirets ou de soulignés : "-----", "____" → supprimer`},
	{AllowStrayTokens, `Tout fragment court isolé qui n'est pas un mot → supprimer`},
	{AllowLineDrops, `Lignes contenant uniquement un numéro de page → supprimer`},
	{AllowParagraphReflow, `Sauts de ligne à l'intérieur d'un paragraphe → fusionner les lignes`},
	{AllowForcedParagraphs, `Séparer chaque paragraphe par une ligne vide`},
}

var repairRules = [...]string{
	RepairNever: "Ne corrige jamais le sens : un mot illisible reste tel quel.",
	RepairObvious: "Un mot devenu absurde peut être corrigé seulement si la correction est évidente " +
		"et ne change qu'une lettre.",
	RepairBestEffort: "Un mot ou un passage illisible peut être restauré au mieux, " +
		"uniquement à partir des lettres présentes.",
}

// Prompt returns the system instruction sent to the correction service for
// text laid out as layout. It lists exactly the edits the policy permits.
func (p Policy) Prompt(layout Layout) string {
	var sb strings.Builder
	sb.WriteString("Tu es un assistant qui corrige UNIQUEMENT les erreurs d'OCR d'un livre.\n\n")

	sb.WriteString("RÈGLES STRICTES - NE JAMAIS :\n")
	sb.WriteString("- Ajouter du texte qui n'existe pas\n")
	sb.WriteString("- Paraphraser ou reformuler\n")
	sb.WriteString("- Résumer ou raccourcir\n")
	sb.WriteString("- Ajouter des explications\n")
	if !p.Allows(AllowLineDrops) {
		sb.WriteString("- Supprimer une ligne entière\n")
	}
	if !p.Allows(AllowParagraphReflow) {
		sb.WriteString("- Fusionner des lignes ou déplacer des sauts de ligne\n")
	}

	sb.WriteString("\nCORRECTIONS AUTORISÉES UNIQUEMENT :\n")
	n := 0
	for _, c := range corrections {
		if !p.Allows(c.perm) {
			continue
		}
		n++
		fmt.Fprintf(&sb, "%d. %s\n", n, c.text)
	}
	if int(p.Repair) >= 0 && int(p.Repair) < len(repairRules) {
		sb.WriteString("\n")
		sb.WriteString(repairRules[p.Repair])
		sb.WriteString("\n")
	}

	switch {
	case layout.Split:
		sb.WriteString("\nLIVRE OUVERT (2 PAGES) :\n")
		sb.WriteString("Le texte contient la page GAUCHE puis, après une ligne vide, la page DROITE.\n")
		sb.WriteString("- Conserve cet ordre\n")
		sb.WriteString("- Ne JAMAIS alterner entre les deux pages ligne par ligne\n")
	case layout.Ambiguous:
		sb.WriteString("\nLIVRE OUVERT (2 PAGES) :\n")
		sb.WriteString("La séparation entre les deux pages n'a pas pu être repérée.\n")
		sb.WriteString("- Conserve strictement l'ordre des lignes\n")
		sb.WriteString("- Ne déplace ni ne réordonne aucun passage\n")
	}

	sb.WriteString("\nFormat de sortie : Retourne UNIQUEMENT le texte corrigé, sans commentaire, sans ajout.")
	return sb.String()
}
