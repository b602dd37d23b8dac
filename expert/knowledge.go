package expert

import (
	"sort"
	"strings"
)

// knowledgeBase é uma base de conhecimento simples indexada por palavras-chave.
var knowledgeBase = map[string]string{
	"prerequisites": `ROSA Prerequisites Checklist:
- AWS account with ROSA enabled
- ROSA CLI installed and authenticated
- Account roles created (rosa create account-roles)
- OCM role created (rosa create ocm-role)
- User role created (rosa create user-role)
- For HCP: Billing account linked via Red Hat Console
- Sufficient AWS quotas (100+ vCPUs)
- ELB service-linked role exists`,

	"regions": `Supported ROSA HCP Regions:
- us-east-1 (N. Virginia)
- us-east-2 (Ohio)
- us-west-1 (N. California)
- us-west-2 (Oregon)
- eu-central-1 (Frankfurt)
- eu-west-1 (Ireland)
- eu-west-2 (London)
- ap-southeast-1 (Singapore)
- ap-southeast-2 (Sydney)
- ap-northeast-1 (Tokyo)

Verify with: rosa list regions --hosted-cp`,

	"instance types": `Recommended ROSA Instance Types:
General Purpose:
- m5.xlarge (4 vCPU, 16 GiB) - Default
- m5.2xlarge (8 vCPU, 32 GiB)
- m5.4xlarge (16 vCPU, 64 GiB)

Compute Optimized:
- c5.xlarge (4 vCPU, 8 GiB)
- c5.2xlarge (8 vCPU, 16 GiB)

Memory Optimized:
- r5.xlarge (4 vCPU, 32 GiB)
- r5.2xlarge (8 vCPU, 64 GiB)

List available: rosa list machine-types --region <region>`,

	"networking": `ROSA Networking Options:
1. Public Cluster (Default): API and apps accessible from internet
2. Private Cluster: API accessible only within VPC (--private flag)
3. Zero Egress: No outbound internet (--egress-lockdown flag)

VPC Requirements for HCP:
- Both public and private subnets required
- BYO-VPC model (bring your own VPC)
- Or use: rosa create network --region <region>`,
}

// KnowledgeSnippets retorna os trechos da base de conhecimento relevantes
// para a consulta, via casamento simples de palavras-chave.
func KnowledgeSnippets(query string) []string {
	queryLower := strings.ToLower(query)

	keys := make([]string, 0, len(knowledgeBase))
	for key := range knowledgeBase {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var snippets []string
	for _, key := range keys {
		for _, keyword := range strings.Fields(key) {
			if strings.Contains(queryLower, keyword) {
				snippets = append(snippets, knowledgeBase[key])
				break
			}
		}
	}
	return snippets
}
