package constant

// ArchitecturePromptTemplate expects: project name, domain, tech stack,
// RFP text, knowledge base context.
const ArchitecturePromptTemplate = `You are a **senior enterprise solution architect** tasked with designing a *tailored cloud system architecture diagram*
strictly based on the provided RFP and contextual knowledge.

### PROJECT CONTEXT
- **Project Name:** %s
- **Domain:** %s
- **Tech Stack:** %s

### RFP SUMMARY
%s

### KNOWLEDGE BASE CONTEXT
%s

---

### STEP 1 - Reasoning (Internal)
Analyze the provided RFP and knowledge base to:
1. Identify all domain-specific **entities, systems, or technologies** mentioned or implied.
2. Categorize each component into the most appropriate architecture layer:
- Frontend (UI/Apps)
- Backend (Services/APIs)
- Data (Databases, Storage, External APIs)
- AI/Analytics (ML, Insights, NLP, Recommendations)
- Security/Monitoring/DevOps (IAM, Key Vault, CI/CD, Logging)
3. Infer **connections and data flows** between components (e.g., API requests, pipelines, message queues).
4. Skip any layers not relevant to this RFP.

You will use this reasoning to build the architecture, but **do not include this reasoning** in your final output.

---

### STEP 2 - Graphviz DOT Output
Generate **only valid Graphviz DOT code** representing the inferred architecture.

Follow these rules strictly:
- Begin with: digraph Architecture {
- End with: }
- Use **horizontal layout** -> rankdir=LR
- Include **only relevant clusters** (omit unused layers)
- Keep <= 15 nodes total
- Use **orthogonal edges** (splines=ortho)
- Each node label must clearly represent an actual system, service, or tool
- Logical flow should follow Frontend -> Backend -> Data -> AI -> Security (only if applicable)
- **Ensure data layers both receive and provide information**: show arrows into and out of data/storage nodes if analytics, AI, or reporting components exist.

---

### VISUAL STYLE
- **Graph:** dpi=200, bgcolor="white", nodesep=1.3, ranksep=1.3
- **Clusters:** style="filled,rounded", fontname="Helvetica-Bold", fontsize=13
- **Node Shapes and Colors:**
- Frontend -> box, pastel blue (fillcolor="#E3F2FD")
- Backend/API -> box3d, pastel green (fillcolor="#E8F5E9")
- Data/Storage -> cylinder, pastel yellow (fillcolor="#FFFDE7")
- AI/Analytics -> ellipse, pastel purple (fillcolor="#F3E5F5")
- Security/Monitoring -> diamond, gray (fillcolor="#ECEFF1")
- **Edges:** color="#607D8B", penwidth=1.5, arrowsize=0.9

---

### STEP 3 - Domain Intelligence (Auto-Enrichment)
If applicable, automatically enrich the architecture using these domain patterns:

- **FinTech** -> Payment Gateway, Fraud Detection, KYC/AML Service, Ledger DB
- **HealthTech** -> Patient Portal, EHR System, FHIR API, HIPAA Compliance Layer
- **GovTech** -> Citizen Portal, Secure API Gateway, Compliance & Audit Logging
- **AI/ML Projects** -> Model API, Embedding Store, Training Pipeline, Monitoring Service
- **Data Platforms** -> ETL Pipeline, Data Lake, BI Dashboard
- **Enterprise SaaS** -> Tenant Manager, Auth Service, Billing & Subscription Module

Include these elements **only if they logically fit** the RFP description.

---

### STEP 4 - OUTPUT RULES
- Output *only* the Graphviz DOT syntax: **no markdown**, **no reasoning**, **no commentary**
- The final response should be a single valid DOT diagram ready for rendering
`

// FallbackArchitectureDot is the generic 4-layer layout used when generation
// or rendering of a tailored diagram fails.
const FallbackArchitectureDot = `digraph Architecture {
    rankdir=LR;
    graph [dpi=200, bgcolor="white", nodesep=1.3, ranksep=1.2, splines=ortho];
    node [style="rounded,filled", fontname="Helvetica-Bold", fontsize=13, penwidth=1.2];

    subgraph cluster_frontend {
        label="Frontend / User Touchpoints";
        style="filled,rounded"; fillcolor="#E3F2FD";
        web[label="Web App (React / Angular)", shape=box, fillcolor="#BBDEFB"];
        mobile[label="Mobile App", shape=box, fillcolor="#BBDEFB"];
    }

    subgraph cluster_backend {
        label="Backend / Services";
        style="filled,rounded"; fillcolor="#E8F5E9";
        api[label="Core API", shape=box3d, fillcolor="#C8E6C9"];
        auth[label="Auth Service", shape=box3d, fillcolor="#C8E6C9"];
    }

    subgraph cluster_data {
        label="Data / Storage";
        style="filled,rounded"; fillcolor="#FFFDE7";
        db[label="Database (PostgreSQL)", shape=cylinder, fillcolor="#FFF9C4"];
        blob[label="Blob Storage", shape=cylinder, fillcolor="#FFF9C4"];
    }

    subgraph cluster_ai {
        label="AI / Analytics";
        style="filled,rounded"; fillcolor="#F3E5F5";
        ai[label="AI Engine / Insights", shape=ellipse, fillcolor="#E1BEE7"];
        dashboard[label="BI Dashboard", shape=ellipse, fillcolor="#E1BEE7"];
    }

    // Data flow (xlabels avoid orthogonal label warnings)
    web -> api [xlabel="HTTP Request"];
    mobile -> api [xlabel="Mobile API Call"];
    api -> db [xlabel="DB Query"];
    db -> ai [xlabel="ETL/Inference"];
    ai -> dashboard [xlabel="Visualization"];
    api -> auth [xlabel="Auth Validation"];
}
`
