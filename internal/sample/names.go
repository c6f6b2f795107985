package sample

var departments = []string{
	"Engineering", "Marketing", "Sales", "HR", "Finance",
	"Operations", "Customer Service", "Product", "Design", "Legal",
}

var positions = map[string][]string{
	"Engineering":      {"Senior Developer", "Software Engineer", "DevOps Engineer", "QA Engineer", "Tech Lead", "Full Stack Developer", "Backend Developer", "Frontend Developer", "Mobile Developer", "Data Engineer"},
	"Marketing":        {"Marketing Manager", "Digital Marketing Specialist", "Content Creator", "SEO Specialist", "Social Media Manager", "Brand Manager", "Marketing Coordinator", "Growth Hacker", "Email Marketing Specialist", "Marketing Analyst"},
	"Sales":            {"Sales Executive", "Account Manager", "Business Development", "Sales Manager", "Inside Sales Rep", "Sales Coordinator", "Key Account Manager", "Sales Analyst", "Territory Manager", "Sales Director"},
	"HR":               {"HR Specialist", "Recruiter", "HR Manager", "Training Coordinator", "Compensation Analyst", "HR Generalist", "Employee Relations", "HR Director", "Talent Acquisition", "HR Assistant"},
	"Finance":          {"Financial Analyst", "Accountant", "Finance Manager", "Budget Analyst", "Tax Specialist", "Audit Specialist", "Financial Controller", "Treasury Analyst", "Cost Analyst", "Finance Director"},
	"Operations":       {"Operations Manager", "Process Analyst", "Operations Coordinator", "Supply Chain Analyst", "Logistics Coordinator", "Operations Specialist", "Project Manager", "Operations Director", "Facility Manager", "Operations Analyst"},
	"Customer Service": {"Customer Support Rep", "Customer Success Manager", "Support Specialist", "Customer Service Manager", "Technical Support", "Customer Experience", "Call Center Agent", "Support Team Lead", "Customer Advocate", "Service Coordinator"},
	"Product":          {"Product Manager", "Product Owner", "Product Analyst", "Product Designer", "Product Marketing", "Product Coordinator", "Senior Product Manager", "Product Strategist", "Product Specialist", "Product Director"},
	"Design":           {"UI/UX Designer", "Graphic Designer", "Web Designer", "Creative Director", "Design Lead", "Visual Designer", "Product Designer", "Brand Designer", "Motion Designer", "Design Coordinator"},
	"Legal":            {"Legal Counsel", "Paralegal", "Legal Assistant", "Contract Specialist", "Compliance Officer", "Legal Analyst", "General Counsel", "Legal Coordinator", "Intellectual Property", "Legal Director"},
}

var firstNames = []string{
	"John", "Sarah", "Michael", "Emily", "David", "Jennifer", "Robert", "Jessica", "William", "Ashley",
	"James", "Amanda", "Christopher", "Melissa", "Daniel", "Michelle", "Matthew", "Kimberly", "Anthony", "Amy",
	"Mark", "Angela", "Donald", "Helen", "Steven", "Deborah", "Paul", "Rachel", "Andrew", "Carolyn",
	"Joshua", "Janet", "Kenneth", "Catherine", "Kevin", "Frances", "Brian", "Maria", "George", "Heather",
	"Edward", "Diane", "Ronald", "Ruth", "Timothy", "Julie", "Jason", "Joyce", "Jeffrey", "Virginia",
	"Ryan", "Victoria", "Jacob", "Kelly", "Gary", "Christina", "Nicholas", "Joan", "Eric", "Evelyn",
	"Jonathan", "Lauren", "Stephen", "Judith", "Larry", "Megan", "Justin", "Cheryl", "Scott", "Andrea",
	"Brandon", "Hannah", "Benjamin", "Jacqueline", "Samuel", "Martha", "Gregory", "Gloria", "Alexander", "Teresa",
	"Patrick", "Sara", "Frank", "Janice", "Raymond", "Marie", "Jack", "Madison", "Dennis", "Abigail",
	"Jerry", "Kathryn", "Tyler", "Emma", "Aaron", "Olivia",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
	"Gomez", "Phillips", "Evans", "Turner", "Diaz", "Parker", "Cruz", "Edwards", "Collins", "Reyes",
	"Stewart", "Morris", "Morales", "Murphy", "Cook", "Rogers", "Gutierrez", "Ortiz", "Morgan", "Cooper",
	"Peterson", "Bailey", "Reed", "Kelly", "Howard", "Ramos", "Kim", "Cox", "Ward", "Richardson",
	"Watson", "Brooks", "Chavez", "Wood", "James", "Bennett", "Gray", "Mendoza", "Ruiz", "Hughes",
	"Price", "Alvarez", "Castillo", "Sanders", "Patel", "Myers", "Long", "Ross", "Foster", "Jimenez",
}

var areaCodes = []string{"415", "650", "408", "510", "925", "707", "831", "559", "209", "530"}
