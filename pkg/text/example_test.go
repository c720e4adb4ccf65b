package text_test

import (
	"fmt"
	"regexp"

	"github.com/walteh/webdist/pkg/text"
)

func ExamplePatternReplacer_ReplaceText() {
	pattern := regexp.MustCompile(`https://script\.google\.com/macros/s/AKfycb[a-zA-Z0-9_-]+/exec`)
	replacer := text.NewPatternReplacer(pattern, "https://script.google.com/macros/s/AKfycbyNEWID456/exec")

	result := replacer.ReplaceText(`BRIDGE_URL: "https://script.google.com/macros/s/AKfycbyOLDID123/exec"`)

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)

	// Output:
	// Modified: BRIDGE_URL: "https://script.google.com/macros/s/AKfycbyNEWID456/exec"
	// Changes: 1
}

func ExampleRedactLines() {
	content := "const CONFIG = {\n    BRIDGE_URL: \"https://secret/exec\",\n};\n"

	out, n := text.RedactLines(content, "BRIDGE_URL:", `    BRIDGE_URL: "https://YOUR_NEW_DEPLOYMENT_URL_HERE/exec",`)

	fmt.Print(out)
	fmt.Println(n)

	// Output:
	// const CONFIG = {
	//     BRIDGE_URL: "https://YOUR_NEW_DEPLOYMENT_URL_HERE/exec",
	// };
	// 1
}
